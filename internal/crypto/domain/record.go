package domain

import "fmt"

// IVSize is the AEAD nonce length in bytes (96 bits).
const IVSize = 12

// EncryptedRecord is the serializable envelope for a single encrypted JSON value.
//
// Binary fields marshal to standard base64 through encoding/json's []byte handling,
// producing the wire format:
//
//	{"ciphertext": base64, "iv": base64, "dek_wrapped": base64, "aad_hint": "table:record_id:purpose"}
//
// AADHint is a human-readable echo of the authenticated context, useful when
// auditing stored rows. It is authenticated only through the AAD itself and must
// never be trusted for authorization decisions.
type EncryptedRecord struct {
	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`
	WrappedDek []byte `json:"dek_wrapped"`
	AADHint    string `json:"aad_hint"`
}

// BindingContext is the (table, record_id, purpose) triple authenticated into every
// encryption. Decrypting with any different triple fails integrity verification,
// which is what prevents replaying one guest's ciphertext as another's.
type BindingContext struct {
	Table    string
	RecordID string
	Purpose  string
}

// AAD returns the additional authenticated data bytes for this context.
// The exact string is authenticated with no trimming or case folding; callers are
// responsible for passing the canonical triple.
func (b BindingContext) AAD() []byte {
	return []byte(b.String())
}

// String renders the context in its canonical "table:record_id:purpose" form.
func (b BindingContext) String() string {
	return fmt.Sprintf("%s:%s:%s", b.Table, b.RecordID, b.Purpose)
}
