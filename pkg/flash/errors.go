package flash

import "errors"

var (
	// ErrNoSnapshot indicates no flash value exists for the key, or that it
	// was already consumed.
	ErrNoSnapshot = errors.New("flash.no_snapshot")

	// ErrEncode indicates the value could not be serialized.
	ErrEncode = errors.New("flash.encode_failed")

	// ErrDecode indicates a stored value could not be deserialized.
	ErrDecode = errors.New("flash.decode_failed")

	// ErrSession indicates the per-session identity cookie could not be
	// established.
	ErrSession = errors.New("flash.session_failed")
)
