package pkx

import (
	"encoding/binary"
	"fmt"
)

// TrainerIdentity holds the three fields the ESV calculation needs.
type TrainerIdentity struct {
	TID uint16 // visible trainer ID
	SID uint16 // secret trainer ID
	PID uint32 // personality value of the egg
}

// Header holds the decoded leading fields of an egg file. Only TID, SID
// and PID matter for sorting; the rest is surfaced by the info command.
type Header struct {
	EncryptionConstant uint32
	Sanity             uint16
	Checksum           uint16
	Species            uint16
	HeldItem           uint16
	TID                uint16
	SID                uint16
	EXP                uint32
	Ability            uint8
	AbilityNumber      uint8
	TrainingBagHits    uint8
	TrainingBag        uint8
	PID                uint32
}

// Identity returns the trainer identity fields of the header.
func (h Header) Identity() TrainerIdentity {
	return TrainerIdentity{TID: h.TID, SID: h.SID, PID: h.PID}
}

// G7TID returns the trainer ID as displayed in generation 7 games.
// Gen 7 shows the low six decimal digits of the combined 32-bit ID
// instead of the raw 16-bit value.
func (h Header) G7TID() uint32 {
	full := uint32(h.SID)<<16 | uint32(h.TID)
	return full % 1000000
}

// G7SID returns the secret ID as displayed in generation 7 games,
// the high four decimal digits of the combined 32-bit ID.
func (h Header) G7SID() uint32 {
	full := uint32(h.SID)<<16 | uint32(h.TID)
	return full / 1000000
}

// DecodeHeader decodes the leading fields of an egg file.
// It returns ErrTruncated when data is shorter than the format requires.
// No checksum or sanity validation is performed; any sufficiently long
// byte sequence is accepted.
func DecodeHeader(data []byte, format Format) (Header, error) {
	l := layouts[format]
	if len(data) < l.minLen {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncated, len(data), l.minLen)
	}
	le := binary.LittleEndian
	return Header{
		EncryptionConstant: le.Uint32(data[l.encryptionConstant:]),
		Sanity:             le.Uint16(data[l.sanity:]),
		Checksum:           le.Uint16(data[l.checksum:]),
		Species:            le.Uint16(data[l.species:]),
		HeldItem:           le.Uint16(data[l.heldItem:]),
		TID:                le.Uint16(data[l.tid:]),
		SID:                le.Uint16(data[l.sid:]),
		EXP:                le.Uint32(data[l.exp:]),
		Ability:            data[l.ability],
		AbilityNumber:      data[l.abilityNumber],
		TrainingBagHits:    data[l.trainingBagHits],
		TrainingBag:        data[l.trainingBag],
		PID:                le.Uint32(data[l.pid:]),
	}, nil
}

// Encode renders the header into a byte slice of the format's minimum
// length. It is the inverse of DecodeHeader over the decoded fields and
// exists for generating test eggs; real egg files are longer, with the
// remainder ignored by this package.
func (h Header) Encode(format Format) []byte {
	l := layouts[format]
	data := make([]byte, l.minLen)
	le := binary.LittleEndian
	le.PutUint32(data[l.encryptionConstant:], h.EncryptionConstant)
	le.PutUint16(data[l.sanity:], h.Sanity)
	le.PutUint16(data[l.checksum:], h.Checksum)
	le.PutUint16(data[l.species:], h.Species)
	le.PutUint16(data[l.heldItem:], h.HeldItem)
	le.PutUint16(data[l.tid:], h.TID)
	le.PutUint16(data[l.sid:], h.SID)
	le.PutUint32(data[l.exp:], h.EXP)
	data[l.ability] = h.Ability
	data[l.abilityNumber] = h.AbilityNumber
	data[l.trainingBagHits] = h.TrainingBagHits
	data[l.trainingBag] = h.TrainingBag
	le.PutUint32(data[l.pid:], h.PID)
	return data
}

// Extract decodes just the trainer identity fields from an egg file.
func Extract(data []byte, format Format) (TrainerIdentity, error) {
	h, err := DecodeHeader(data, format)
	if err != nil {
		return TrainerIdentity{}, err
	}
	return h.Identity(), nil
}
