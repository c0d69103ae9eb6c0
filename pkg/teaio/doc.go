// Package teaio adapts the XTEA block cipher to byte streams: a Writer that
// encrypts in CBC mode with PKCS#7 padding appended on Close, and a Reader
// that decrypts block-by-block without stripping padding.
// Neither type is safe for concurrent use.
package teaio
