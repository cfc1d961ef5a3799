/*
Package randx provides functions for generating unique identifiers and random
guest handles.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// GuestHandlePrefix is the prefix used for randomly generated guest handles.
	GuestHandlePrefix = "guest_"

	// GuestHandleRawLength is the length of the random Base62 part of a guest handle.
	GuestHandleRawLength = 6
)

// MessageID generates a standard UUID v4 string to serve as a unique identifier
// for an outbound message.
func MessageID() string {
	return uuid.New().String()
}

// GuestHandle generates a random guest handle ("guest_" plus 6 Base62 characters)
// using crypto/rand.
func GuestHandle() (string, error) {
	result := make([]byte, GuestHandleRawLength)

	for i := range GuestHandleRawLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for guest handle: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return GuestHandlePrefix + string(result), nil
}

// IsValidGuestHandle checks if the given string has the generated guest handle shape.
func IsValidGuestHandle(handle string) bool {
	if !strings.HasPrefix(handle, GuestHandlePrefix) {
		return false
	}

	raw := handle[len(GuestHandlePrefix):]

	if len(raw) != GuestHandleRawLength {
		return false
	}

	for _, char := range raw {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
