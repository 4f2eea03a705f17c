package ir

import "github.com/hassandahiru/soulc/internal/types"

// BasicBlock owns its instructions (in insertion order) and holds
// non-owning references to its successor blocks (§3). Labels are unique
// within a function, assigned in creation order by the IRBuilder.
type BasicBlock struct {
	Label        uint32
	Instructions []Instruction
	Successors   []*BasicBlock
}

func newBasicBlock(label uint32) *BasicBlock {
	return &BasicBlock{Label: label}
}

func (b *BasicBlock) append(inst Instruction) {
	b.Instructions = append(b.Instructions, inst)
}

// prepend inserts inst at the head of the block's instruction list — used
// only for Phi placement, mirroring how block-local φ-nodes are
// conventionally laid out ahead of the code that reads them.
func (b *BasicBlock) prepend(inst Instruction) {
	b.Instructions = append([]Instruction{inst}, b.Instructions...)
}

// Function owns its basic blocks; the first is always the entry block
// (§3).
type Function struct {
	Name       string
	ReturnType types.Type
	ParamTypes []types.Type
	Blocks     []*BasicBlock
}

func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// Module owns its functions, in the order they were created (§3).
type Module struct {
	Name      string
	Functions []*Function
}
