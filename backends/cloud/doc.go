// Package cloud extracts line items through a model-based extraction
// service.
//
// The backend is provider-neutral: the caller supplies the endpoint, the
// headers and a request builder, and the service is expected to answer
// with a JSON document listing the line items it extracted. The response
// is sanitized leniently (malformed optional fields are dropped, not
// fatal), validated strictly against a JSON schema and mapped onto
// pre-structured records for scoring.
package cloud
