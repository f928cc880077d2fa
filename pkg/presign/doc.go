// Package presign issues time-limited, capability-scoped authorizations for
// single object-storage operations: an upload authorization (presigned POST
// URL plus the form fields the uploader must submit verbatim) or a download
// authorization (a presigned GET URL).
//
// The package owns the decision logic only: request validation, object key
// derivation, and construction of the policy conditions embedded in each
// authorization (expiry, size bounds, content-type restriction, encryption
// requirement, metadata binding). Cryptographic signing is delegated to a
// Signer collaborator; implementations for S3 and an in-process fake are
// provided under subpackages.
//
// Every invocation is stateless: entities are constructed, used, and
// discarded within one call, so concurrent use needs no coordination.
package presign
