package cybersource

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// sopSignature computes the legacy Silent Order POST public signature:
// Base64(HMAC-SHA1(secret, merchantID+amount+currency+timestamp+type)).
// The four field values are concatenated with no separators in exactly
// this order; the gateway recomputes the same string server side.
func sopSignature(secret string, fs *FieldSet, timestamp string) string {
	data := fs.Get("merchantID") +
		fs.Get("amount") +
		fs.Get("currency") +
		timestamp +
		fs.Get("orderPage_transactionType")

	h := hmac.New(sha1.New, []byte(secret))
	h.Write([]byte(data))
	return encodeSignature(h.Sum(nil))
}

// secureAcceptanceSignature computes the Secure Acceptance signature:
// Base64(HMAC-SHA256(secret, data)) where data joins "name=value" pairs
// with commas, walking the names listed in signedFieldNames in order.
// Values are looked up in the field set at signing time, so every signed
// field has to be populated before this runs.
func secureAcceptanceSignature(secret string, fs *FieldSet, signedFieldNames string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signedFieldData(fs, signedFieldNames)))
	return encodeSignature(h.Sum(nil))
}

func signedFieldData(fs *FieldSet, signedFieldNames string) string {
	names := strings.Split(signedFieldNames, ",")
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+fs.Get(name))
	}
	return strings.Join(pairs, ",")
}

// encodeSignature base64-encodes a MAC with any embedded newlines removed
func encodeSignature(mac []byte) string {
	return strings.ReplaceAll(base64.StdEncoding.EncodeToString(mac), "\n", "")
}

// signaturesEqual compares a received signature against the recomputed
// one: trimmed, case sensitive, constant time.
func signaturesEqual(expected, received string) bool {
	return hmac.Equal([]byte(strings.TrimSpace(expected)), []byte(strings.TrimSpace(received)))
}
