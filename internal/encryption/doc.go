// Package encryption processes files through the XTEA/CBC streaming layer.
// Files are handled concurrently and written atomically; each output carries
// a small envelope header and a random IV ahead of the ciphertext.
// Requires a 16-byte key.
package encryption
