package alu

import "fmt"

// RegE enumerates the field-element registers exposed by the general field-arithmetic
// (Gfa) core: the eight general-purpose slots E1..E8 and the four load destinations
// EA..ED used by the USONIC extension's ld* instructions.
type RegE uint8

const (
	RegE1 RegE = iota
	RegE2
	RegE3
	RegE4
	RegE5
	RegE6
	RegE7
	RegE8
	RegEA
	RegEB
	RegEC
	RegED

	regCount
)

// AllRegs lists every Gfa register in encoding order.
var AllRegs = [regCount]RegE{RegE1, RegE2, RegE3, RegE4, RegE5, RegE6, RegE7, RegE8, RegEA, RegEB, RegEC, RegED}

func (r RegE) String() string {
	switch r {
	case RegE1, RegE2, RegE3, RegE4, RegE5, RegE6, RegE7, RegE8:
		return fmt.Sprintf("E%d", int(r)+1)
	case RegEA:
		return "EA"
	case RegEB:
		return "EB"
	case RegEC:
		return "EC"
	case RegED:
		return "ED"
	default:
		return fmt.Sprintf("RegE(%d)", uint8(r))
	}
}

// valid reports whether the byte encodes one of the twelve Gfa registers.
func (r RegE) valid() bool { return r < regCount }

// LoadRegs are the four registers EA..ED that ld* instructions fill in order.
var LoadRegs = [4]RegE{RegEA, RegEB, RegEC, RegED}
