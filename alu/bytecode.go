package alu

import (
	"encoding/binary"
	"fmt"

	"ultrasonic.dev/sonic/fe"
)

// Decode reads one instruction starting at pos in code. ext decodes opcodes at or
// above ExtRangeStart; it may be nil, in which case every such opcode decodes to
// ReservedInstr. Decode never returns an error for an unrecognized opcode — per ยง6.2
// unused opcodes are reserved and simply fail when executed, they are not a decode-time
// error. It does return an error when a recognized opcode is truncated (not enough
// bytes left in code for its operands), since that is a malformed library, not a
// legitimate reserved instruction.
func Decode(code []byte, pos int, ext ExtDecoder) (next int, instr Instruction, err error) {
	if pos < 0 || pos >= len(code) {
		return pos, nil, fmt.Errorf("alu: decode past end of code at %d", pos)
	}
	op := code[pos]

	switch op {
	case opNop, opStop, opChk:
		return pos + 1, ctrlInstr{op: op}, nil
	case opJmp, opJif, opJnif:
		arg, n, err := readU16(code, pos+1)
		if err != nil {
			return pos, nil, err
		}
		return n, ctrlInstr{op: op, arg: arg}, nil
	case opNot:
		return pos + 1, gfaInstr{op: op}, nil
	case opClr, opTest, opNeg:
		r, n, err := readReg(code, pos+1)
		if err != nil {
			return pos, nil, err
		}
		return n, gfaInstr{op: op, a: r}, nil
	case opMov, opEq, opAdd, opMul:
		a, n, err := readReg(code, pos+1)
		if err != nil {
			return pos, nil, err
		}
		b, n2, err := readReg(code, n)
		if err != nil {
			return pos, nil, err
		}
		return n2, gfaInstr{op: op, a: a, b: b}, nil
	case opPut:
		r, n, err := readReg(code, pos+1)
		if err != nil {
			return pos, nil, err
		}
		if n+32 > len(code) {
			return pos, nil, fmt.Errorf("alu: truncated PUT immediate at %d", pos)
		}
		imm, err := fe.FromBytesBE(code[n : n+32])
		if err != nil {
			return pos, nil, err
		}
		return n + 32, gfaInstr{op: op, a: r, imm: imm}, nil
	}

	if op >= ExtRangeStart && ext != nil {
		if n, instr, ok, err := ext(code, pos, op); ok {
			return n, instr, err
		} else if err != nil {
			return pos, nil, err
		}
	}
	return pos + 1, ReservedInstr{Opcode: op}, nil
}

func readU16(code []byte, pos int) (uint16, int, error) {
	if pos+2 > len(code) {
		return 0, pos, fmt.Errorf("alu: truncated u16 operand at %d", pos)
	}
	return binary.BigEndian.Uint16(code[pos : pos+2]), pos + 2, nil
}

func readReg(code []byte, pos int) (RegE, int, error) {
	if pos+1 > len(code) {
		return 0, pos, fmt.Errorf("alu: truncated register operand at %d", pos)
	}
	r := RegE(code[pos])
	if !r.valid() {
		return 0, pos, fmt.Errorf("alu: invalid register encoding %d at %d", code[pos], pos)
	}
	return r, pos + 1, nil
}

// --- encoding helpers used by package-level assemblers (see asm.go and isa's own
// instruction encoders, which reuse appendReg/appendU16 for their own operands). ---

func appendU16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendReg(buf []byte, r RegE) []byte {
	return append(buf, byte(r))
}
