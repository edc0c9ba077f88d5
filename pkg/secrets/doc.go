// Package secrets seals and opens credential material with AES-256-GCM.
//
// A single 32-byte master key is combined with an environment label through
// HKDF-SHA256, so credentials sealed for one environment cannot be opened
// with another environment's derived key even though the master key is
// shared. The ciphertext layout is nonce || encrypted data || tag.
//
// Usage:
//
//	key, _ := secrets.GenerateKey()
//	sealed, _ := secrets.SealString(key, "staging", `{"principal":"admin","secret":"…"}`)
//	plain, _ := secrets.OpenString(key, "staging", sealed)
package secrets
