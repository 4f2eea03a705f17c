package ir

import (
	"fmt"
	"strings"
)

// Print renders module in the textual format §4.11 defines: one function
// block per `fn @name(types…) :: return_type { … }`, basic blocks
// prefixed `#<label>:`, instructions prefixed `%<version> = <Instr>(operands…)
// :: <type>`, and a trailing `; successors: [#…]` comment per block.
func Print(module *Module) string {
	var b strings.Builder
	for i, fn := range module.Functions {
		if i > 0 {
			b.WriteByte('\n')
		}
		printFunction(&b, fn)
	}
	return b.String()
}

func printFunction(b *strings.Builder, fn *Function) {
	params := make([]string, len(fn.ParamTypes))
	for i, p := range fn.ParamTypes {
		params[i] = p.String()
	}
	fmt.Fprintf(b, "fn @%s(%s) :: %s {\n", fn.Name, strings.Join(params, ", "), fn.ReturnType.String())
	for _, blk := range fn.Blocks {
		printBlock(b, blk)
	}
	b.WriteString("}\n")
}

func printBlock(b *strings.Builder, blk *BasicBlock) {
	fmt.Fprintf(b, "  #%d:\n", blk.Label)
	for _, inst := range blk.Instructions {
		fmt.Fprintf(b, "    %s\n", printInstruction(inst))
	}
	succs := make([]string, len(blk.Successors))
	for i, s := range blk.Successors {
		succs[i] = fmt.Sprintf("#%d", s.Label)
	}
	fmt.Fprintf(b, "    ; successors: [%s]\n", strings.Join(succs, ", "))
}

func printInstruction(inst Instruction) string {
	body := instructionBody(inst)
	return fmt.Sprintf("%%%d = %s :: %s", inst.Version(), body, inst.Type().String())
}

// instructionBody renders everything inside and including the variant's
// own parens, reusing each Instruction's String() method except for
// PhiInst, whose Incoming edges the generic Stringer can't see (they are
// filled in after the instruction is first constructed — see
// IRBuilder.EmitPhi).
func instructionBody(inst Instruction) string {
	phi, ok := inst.(*PhiInst)
	if !ok {
		return inst.String()
	}
	edges := make([]string, len(phi.Incoming))
	for i, e := range phi.Incoming {
		edges[i] = fmt.Sprintf("[#%d: %%%d]", e.Block.Label, e.Value.Version())
	}
	return fmt.Sprintf("Phi(%q, %s)", phi.Identifier, strings.Join(edges, ", "))
}
