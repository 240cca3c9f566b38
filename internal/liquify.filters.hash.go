package internal

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha3"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"html"
	"net/url"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
)

// Hash and encoding filter names
const (
	FilterNameMD5            = "md5"
	FilterNameSHA1           = "sha1"
	FilterNameSHA256         = "sha256"
	FilterNameHash           = "hash"
	FilterNameHMACSHA1       = "hmac_sha1"
	FilterNameHMACSHA256     = "hmac_sha256"
	FilterNameEscapeOnce     = "escape_once"
	FilterNameURLEncode      = "url_encode"
	FilterNameURLDecode      = "url_decode"
	FilterNameURLEscape      = "url_escape"
	FilterNameURLParamEscape = "url_param_escape"
)

// Digest algorithm names accepted by the hash filter
const (
	AlgorithmMD5      = "md5"
	AlgorithmSHA1     = "sha1"
	AlgorithmSHA224   = "sha224"
	AlgorithmSHA256   = "sha256"
	AlgorithmSHA384   = "sha384"
	AlgorithmSHA512   = "sha512"
	AlgorithmSHA3_224 = "sha3_224"
	AlgorithmSHA3_256 = "sha3_256"
	AlgorithmSHA3_384 = "sha3_384"
	AlgorithmSHA3_512 = "sha3_512"
	AlgorithmBLAKE2b  = "blake2b"
	AlgorithmBLAKE2s  = "blake2s"
)

// Hash filter error messages
const (
	ErrMsgUnsupportedAlgorithm = "unsupported digest algorithm"
	ErrMsgURLDecodeFailed      = "malformed percent-encoding"
)

// digestConstructors maps algorithm names to hash constructors
var digestConstructors = map[string]func() (hash.Hash, error){
	AlgorithmMD5:      plainDigest(md5.New),
	AlgorithmSHA1:     plainDigest(sha1.New),
	AlgorithmSHA224:   plainDigest(sha256.New224),
	AlgorithmSHA256:   plainDigest(sha256.New),
	AlgorithmSHA384:   plainDigest(sha512.New384),
	AlgorithmSHA512:   plainDigest(sha512.New),
	AlgorithmSHA3_224: func() (hash.Hash, error) { return sha3.New224(), nil },
	AlgorithmSHA3_256: func() (hash.Hash, error) { return sha3.New256(), nil },
	AlgorithmSHA3_384: func() (hash.Hash, error) { return sha3.New384(), nil },
	AlgorithmSHA3_512: func() (hash.Hash, error) { return sha3.New512(), nil },
	AlgorithmBLAKE2b:  func() (hash.Hash, error) { return blake2b.New512(nil) },
	AlgorithmBLAKE2s:  func() (hash.Hash, error) { return blake2s.New256(nil) },
}

func plainDigest(fn func() hash.Hash) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return fn(), nil }
}

// AlgorithmError reports a digest algorithm that is not available.
type AlgorithmError struct {
	Message   string
	Algorithm string
}

// NewAlgorithmError creates a new algorithm error
func NewAlgorithmError(algorithm string) *AlgorithmError {
	return &AlgorithmError{
		Message:   ErrMsgUnsupportedAlgorithm,
		Algorithm: algorithm,
	}
}

// Error implements the error interface
func (e *AlgorithmError) Error() string {
	return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.Algorithm)
}

// SupportedAlgorithms lists the digest names accepted by Digest, sorted
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(digestConstructors))
	for name := range digestConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Digest returns the hex-encoded digest of data using algorithm.
func Digest(algorithm string, data []byte) (string, error) {
	newHash, ok := digestConstructors[algorithm]
	if !ok {
		return "", NewAlgorithmError(algorithm)
	}
	h, err := newHash()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// registerHashFilters registers digest, MAC and encoding filters
func registerHashFilters(b *FilterTableBuilder) {
	registerDigestFilter(b, FilterNameMD5, AlgorithmMD5)
	registerDigestFilter(b, FilterNameSHA1, AlgorithmSHA1)
	registerDigestFilter(b, FilterNameSHA256, AlgorithmSHA256)

	// hash(base, algorithm) string
	b.MustRegister(&Filter{
		Name:    FilterNameHash,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			s, err := textBase(base, FilterNameHash)
			if err != nil {
				return nil, err
			}
			algorithm, err := stringArg(args, 0, FilterNameHash)
			if err != nil {
				return nil, err
			}
			return Digest(algorithm, []byte(s))
		},
	})

	registerHMACFilter(b, FilterNameHMACSHA1, sha1.New)
	registerHMACFilter(b, FilterNameHMACSHA256, sha256.New)

	registerTextFunc(b, FilterNameEscapeOnce, func(s string) string {
		return html.EscapeString(html.UnescapeString(s))
	})
	registerTextFunc(b, FilterNameURLEncode, url.QueryEscape)
	registerTextFunc(b, FilterNameURLEscape, url.QueryEscape)
	registerTextFunc(b, FilterNameURLParamEscape, url.QueryEscape)

	// url_decode(base) string
	b.MustRegister(&Filter{
		Name:    FilterNameURLDecode,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			s, err := textBase(base, FilterNameURLDecode)
			if err != nil {
				return nil, err
			}
			decoded, err := url.QueryUnescape(s)
			if err != nil {
				return nil, fmt.Errorf(ErrFmtWithCause, ErrMsgURLDecodeFailed, err)
			}
			return decoded, nil
		},
	})
}

// registerDigestFilter registers a fixed-algorithm digest filter
func registerDigestFilter(b *FilterTableBuilder, name, algorithm string) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			s, err := textBase(base, name)
			if err != nil {
				return nil, err
			}
			return Digest(algorithm, []byte(s))
		},
	})
}

// registerHMACFilter registers a keyed MAC filter. The piped value is the
// secret key and the argument is the message.
func registerHMACFilter(b *FilterTableBuilder, name string, fn func() hash.Hash) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			key, err := textBase(base, name)
			if err != nil {
				return nil, err
			}
			message, err := stringArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			mac := hmac.New(fn, []byte(key))
			mac.Write([]byte(message))
			return hex.EncodeToString(mac.Sum(nil)), nil
		},
	})
}
