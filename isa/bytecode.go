package isa

import "ultrasonic.dev/sonic/alu"

// Decode is an alu.ExtDecoder for the USONIC opcode range. Every USONIC instruction
// is one byte with zero operands (ยง6.2), so decoding never needs to look past the
// opcode itself.
func Decode(code []byte, pos int, opcode byte) (next int, instr alu.Instruction, ok bool, err error) {
	switch opcode {
	case opCknxiDestructible, opCknxiImmutable, opCknxoDestructible, opCknxoImmutable,
		opLdw, opLdiWitness, opLdiLock, opLdiAuth, opLdiDestructible, opLdiImmutable,
		opLdoDestructible, opLdoImmutable, opRstiDestructible, opRstiImmutable,
		opRstoDestructible, opRstoImmutable:
		return pos + 1, usonicInstr{op: opcode}, true, nil
	default:
		return pos, nil, false, nil
	}
}
