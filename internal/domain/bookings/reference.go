package bookings

import (
	"fmt"
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

// ReferenceCodec turns internal booking ids into the short public codes
// (BK-XXXXXXXX) printed on invoices and read out over the phone.
type ReferenceCodec struct {
	h *hashids.HashID
}

func NewReferenceCodec(salt string) (*ReferenceCodec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8
	// No vowels or lookalike characters, so codes stay unambiguous when spoken.
	data.Alphabet = "BCDFGHJKLMNPQRSTVWXZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("booking reference codec: %w", err)
	}
	return &ReferenceCodec{h: h}, nil
}

func (c *ReferenceCodec) Encode(bookingID int64) (string, error) {
	code, err := c.h.EncodeInt64([]int64{bookingID})
	if err != nil {
		return "", fmt.Errorf("encode booking reference: %w", err)
	}
	return "BK-" + code, nil
}

func (c *ReferenceCodec) Decode(ref string) (int64, error) {
	code := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(ref)), "BK-")
	ids, err := c.h.DecodeInt64WithError(code)
	if err != nil {
		return 0, fmt.Errorf("decode booking reference %q: %w", ref, err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed booking reference %q", ref)
	}
	return ids[0], nil
}
