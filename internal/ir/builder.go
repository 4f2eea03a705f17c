package ir

import (
	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

// IRBuilder is the single stateful object LowerVisitor drives (§4.9): the
// module under construction, the current insertion point, monotonic
// block-label and instruction-version counters, and the bookkeeping
// EmitPhi needs to reconstruct a reaching value across merge points.
type IRBuilder struct {
	module          *Module
	currentFunction *Function
	currentBlock    *BasicBlock

	nextLabel   uint32
	nextVersion uint32

	// preds is builder-only bookkeeping: §3's BasicBlock carries only
	// successor references, but EmitPhi needs to walk backward from a
	// merge point to find reaching Upsilons, so the builder tracks the
	// inverse edge itself rather than growing the public model with a
	// back-reference the spec doesn't name.
	preds map[*BasicBlock][]*BasicBlock

	// phiCache memoizes the resolved value for (block, identifier),
	// invalidated by the next Upsilon to that identifier in that block —
	// the standard minimal-SSA-construction cache (Braun et al., "Simple
	// and Efficient Construction of Static Single Assignment Form"),
	// not an optimization pass: without it, two plain reads of the same
	// untouched variable in a loop body would recompute (and duplicate)
	// the same φ-node on every call.
	phiCache map[*BasicBlock]map[string]Instruction
}

// NewIRBuilder constructs a builder with an empty module.
func NewIRBuilder() *IRBuilder {
	b := &IRBuilder{}
	b.reset()
	return b
}

func (b *IRBuilder) reset() {
	b.module = &Module{}
	b.currentFunction = nil
	b.currentBlock = nil
	b.nextLabel = 0
	b.nextVersion = 0
	b.preds = make(map[*BasicBlock][]*BasicBlock)
	b.phiCache = make(map[*BasicBlock]map[string]Instruction)
}

// SetModuleName sets the name of the module under construction.
func (b *IRBuilder) SetModuleName(name string) { b.module.Name = name }

// Build yields the finished module and resets the builder for reuse,
// matching §4.9's "build() yields and resets the module".
func (b *IRBuilder) Build() *Module {
	b.finalizePhis()
	m := b.module
	b.reset()
	return m
}

// CreateFunction appends a Function with one entry BasicBlock and
// switches the insertion point to it.
func (b *IRBuilder) CreateFunction(name string, returnType types.Type, paramTypes []types.Type) *Function {
	fn := &Function{Name: name, ReturnType: returnType, ParamTypes: paramTypes}
	b.module.Functions = append(b.module.Functions, fn)
	b.currentFunction = fn
	b.nextLabel = 0

	entry := b.CreateBasicBlock()
	b.SwitchTo(entry)
	return fn
}

// CreateBasicBlock allocates a fresh block within the current function
// with an incrementing label; it does not change the insertion point.
func (b *IRBuilder) CreateBasicBlock() *BasicBlock {
	blk := newBasicBlock(b.nextLabel)
	b.nextLabel++
	b.currentFunction.Blocks = append(b.currentFunction.Blocks, blk)
	return blk
}

// SwitchTo updates the insertion point.
func (b *IRBuilder) SwitchTo(blk *BasicBlock) { b.currentBlock = blk }

// CurrentBlock returns the active insertion point.
func (b *IRBuilder) CurrentBlock() *BasicBlock { return b.currentBlock }

// Connect appends succ to pred's successor list and records the inverse
// edge for EmitPhi. Callers remain responsible for also emitting the
// matching terminator (§4.9).
func (b *IRBuilder) Connect(pred, succ *BasicBlock) {
	pred.Successors = append(pred.Successors, succ)
	b.preds[succ] = append(b.preds[succ], pred)
}

// ConnectMany is Connect's vector form: pred gains every block in succs
// as a successor.
func (b *IRBuilder) ConnectMany(pred *BasicBlock, succs ...*BasicBlock) {
	for _, s := range succs {
		b.Connect(pred, s)
	}
}

func (b *IRBuilder) nextVer() uint32 {
	v := b.nextVersion
	b.nextVersion++
	return v
}

func (b *IRBuilder) emit(inst Instruction) Instruction {
	b.currentBlock.append(inst)
	return inst
}

func (b *IRBuilder) EmitUnreachable() Instruction {
	return b.emit(&UnreachableInst{base: base{version: b.nextVer(), typ: types.UnknownType}})
}

func (b *IRBuilder) EmitNoop() Instruction {
	return b.emit(&NoopInst{base: base{version: b.nextVer(), typ: types.UnknownType}})
}

func (b *IRBuilder) EmitConst(t types.Type, v value.Value) Instruction {
	return b.emit(&ConstInst{base: base{version: b.nextVer(), typ: t}, Value: v})
}

func (b *IRBuilder) EmitCast(target types.Type, operand Instruction) Instruction {
	return b.emit(&CastInst{base: base{version: b.nextVer(), typ: target}, Operand: operand})
}

func (b *IRBuilder) EmitJump(target *BasicBlock) Instruction {
	return b.emit(&JumpInst{base: base{version: b.nextVer(), typ: types.UnknownType}, Target: target})
}

func (b *IRBuilder) EmitJumpIf(cond Instruction, then, els *BasicBlock) Instruction {
	return b.emit(&JumpIfInst{base: base{version: b.nextVer(), typ: types.UnknownType}, Cond: cond, Then: then, Else: els})
}

func (b *IRBuilder) EmitNot(operand Instruction) Instruction {
	return b.emit(&NotInst{base: base{version: b.nextVer(), typ: types.Primitive(types.Boolean)}, Operand: operand})
}

func (b *IRBuilder) emitArith(op ArithOp, lhs, rhs Instruction) Instruction {
	return b.emit(&ArithInst{base: base{version: b.nextVer(), typ: lhs.Type()}, Op: op, Lhs: lhs, Rhs: rhs})
}

func (b *IRBuilder) EmitAdd(lhs, rhs Instruction) Instruction { return b.emitArith(ArithAdd, lhs, rhs) }
func (b *IRBuilder) EmitSub(lhs, rhs Instruction) Instruction { return b.emitArith(ArithSub, lhs, rhs) }
func (b *IRBuilder) EmitMul(lhs, rhs Instruction) Instruction { return b.emitArith(ArithMul, lhs, rhs) }
func (b *IRBuilder) EmitDiv(lhs, rhs Instruction) Instruction { return b.emitArith(ArithDiv, lhs, rhs) }
func (b *IRBuilder) EmitMod(lhs, rhs Instruction) Instruction { return b.emitArith(ArithMod, lhs, rhs) }

func (b *IRBuilder) emitCompare(op CompareOp, lhs, rhs Instruction) Instruction {
	return b.emit(&CompareInst{base: base{version: b.nextVer(), typ: types.Primitive(types.Boolean)}, Op: op, Lhs: lhs, Rhs: rhs})
}

func (b *IRBuilder) EmitEqual(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareEqual, lhs, rhs)
}
func (b *IRBuilder) EmitNotEqual(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareNotEqual, lhs, rhs)
}
func (b *IRBuilder) EmitGreater(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareGreater, lhs, rhs)
}
func (b *IRBuilder) EmitGreaterEqual(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareGreaterEqual, lhs, rhs)
}
func (b *IRBuilder) EmitLess(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareLess, lhs, rhs)
}
func (b *IRBuilder) EmitLessEqual(lhs, rhs Instruction) Instruction {
	return b.emitCompare(CompareLessEqual, lhs, rhs)
}

func (b *IRBuilder) emitLogical(op LogicalOp, lhs, rhs Instruction) Instruction {
	return b.emit(&LogicalInst{base: base{version: b.nextVer(), typ: types.Primitive(types.Boolean)}, Op: op, Lhs: lhs, Rhs: rhs})
}

func (b *IRBuilder) EmitAnd(lhs, rhs Instruction) Instruction { return b.emitLogical(LogicalAnd, lhs, rhs) }
func (b *IRBuilder) EmitOr(lhs, rhs Instruction) Instruction  { return b.emitLogical(LogicalOr, lhs, rhs) }

func (b *IRBuilder) EmitCall(returnType types.Type, name string, args []Instruction) Instruction {
	return b.emit(&CallInst{base: base{version: b.nextVer(), typ: returnType}, Name: name, Args: args})
}

// EmitUpsilon records that identifier holds value's result here, and
// drops any cached phi resolution for identifier in this block — a later
// read in the same block must see this write, not a stale merge computed
// before it.
func (b *IRBuilder) EmitUpsilon(identifier string, v Instruction) Instruction {
	inst := b.emit(&UpsilonInst{base: base{version: b.nextVer(), typ: v.Type()}, Identifier: identifier, Value: v})
	if cache, ok := b.phiCache[b.currentBlock]; ok {
		delete(cache, identifier)
	}
	return inst
}

// EmitPhi reconstructs the value reaching identifier at the current
// block along every predecessor edge, per §4.9's upsilon/phi discipline.
//
// A block with zero or one predecessor resolves eagerly: by the emission
// order every dispatch in §4.10 uses (a block is fully lowered before its
// successor is switched to), a single-predecessor chain's local
// definitions already exist by the time this walks it. A block with two
// or more predecessors is a genuine merge point, and one of those
// predecessors may be a loop body that has not been lowered yet at the
// moment its back edge is connected — filling the Phi's Incoming list
// right away would permanently miss the value the body eventually
// assigns. So merge Phis are only placed eagerly; their Incoming list is
// filled once, lazily, in Build's finalize pass, once every block in the
// function is done.
func (b *IRBuilder) EmitPhi(identifier string, t types.Type) Instruction {
	if cache, ok := b.phiCache[b.currentBlock]; ok {
		if v, ok := cache[identifier]; ok {
			return v
		}
	}

	if v, ok := findLocalUpsilon(b.currentBlock, identifier); ok {
		b.cache(b.currentBlock, identifier, v)
		return v
	}

	preds := b.preds[b.currentBlock]
	if len(preds) == 1 {
		v := b.resolveEager(preds[0], identifier, t)
		b.cache(b.currentBlock, identifier, v)
		return v
	}
	if len(preds) == 0 {
		// No reaching definition — lowering earlier in the pipeline
		// should guarantee every identifier read is dominated by a
		// declaration or parameter binding; reaching this is a bug in
		// an earlier pass, not a user error (§7).
		u := b.emit(&UnreachableInst{base: base{version: b.nextVer(), typ: t}})
		b.cache(b.currentBlock, identifier, u)
		return u
	}

	phi := &PhiInst{base: base{version: b.nextVer(), typ: t}, Identifier: identifier}
	b.currentBlock.prepend(phi)
	b.cache(b.currentBlock, identifier, phi)
	return phi
}

// resolveEager walks a single-predecessor chain immediately. It is only
// ever reached from a block with exactly one predecessor, so it recurses
// into findLocalUpsilon/merge-Phi-placement the same way EmitPhi itself
// does at its own block.
func (b *IRBuilder) resolveEager(blk *BasicBlock, identifier string, t types.Type) Instruction {
	if cache, ok := b.phiCache[blk]; ok {
		if v, ok := cache[identifier]; ok {
			return v
		}
	}
	if v, ok := findLocalUpsilon(blk, identifier); ok {
		b.cache(blk, identifier, v)
		return v
	}
	preds := b.preds[blk]
	if len(preds) == 1 {
		v := b.resolveEager(preds[0], identifier, t)
		b.cache(blk, identifier, v)
		return v
	}
	if len(preds) == 0 {
		u := &UnreachableInst{base: base{version: b.nextVer(), typ: t}}
		blk.prepend(u)
		b.cache(blk, identifier, u)
		return u
	}
	phi := &PhiInst{base: base{version: b.nextVer(), typ: t}, Identifier: identifier}
	blk.prepend(phi)
	b.cache(blk, identifier, phi)
	return phi
}

func (b *IRBuilder) cache(blk *BasicBlock, identifier string, v Instruction) {
	cache, ok := b.phiCache[blk]
	if !ok {
		cache = make(map[string]Instruction)
		b.phiCache[blk] = cache
	}
	cache[identifier] = v
}

// finalizePhis fills every merge Phi's Incoming list now that every block
// in the module has been fully lowered, so a loop body's own Upsilons
// are visible to the phi sitting at the top of the loop condition block.
func (b *IRBuilder) finalizePhis() {
	filled := make(map[*PhiInst]bool)
	for _, fn := range b.module.Functions {
		for _, blk := range fn.Blocks {
			for _, inst := range blk.Instructions {
				if phi, ok := inst.(*PhiInst); ok {
					b.fillPhi(phi, blk, filled)
				}
			}
		}
	}
}

func (b *IRBuilder) fillPhi(phi *PhiInst, blk *BasicBlock, filled map[*PhiInst]bool) {
	if filled[phi] {
		return
	}
	filled[phi] = true
	for _, pred := range b.preds[blk] {
		v := b.resolveFinal(pred, phi.Identifier, phi.Type(), filled)
		phi.Incoming = append(phi.Incoming, PhiEdge{Block: pred, Value: v})
	}
}

// resolveFinal is resolveEager's counterpart run after the whole function
// is lowered: every block's instruction list is now complete, so a
// not-yet-filled Phi encountered mid-chain is still a safe, stable
// reference to return — cycles terminate because that Phi object was
// already prepended to its block when it was first placed.
func (b *IRBuilder) resolveFinal(blk *BasicBlock, identifier string, t types.Type, filled map[*PhiInst]bool) Instruction {
	if v, ok := findLocalUpsilon(blk, identifier); ok {
		if phi, ok := v.(*PhiInst); ok {
			b.fillPhi(phi, blk, filled)
		}
		return v
	}
	preds := b.preds[blk]
	if len(preds) == 1 {
		return b.resolveFinal(preds[0], identifier, t, filled)
	}
	if len(preds) == 0 {
		u := &UnreachableInst{base: base{version: b.nextVer(), typ: t}}
		blk.prepend(u)
		return u
	}
	phi := &PhiInst{base: base{version: b.nextVer(), typ: t}, Identifier: identifier}
	blk.prepend(phi)
	b.fillPhi(phi, blk, filled)
	return phi
}

func findLocalUpsilon(blk *BasicBlock, identifier string) (Instruction, bool) {
	for i := len(blk.Instructions) - 1; i >= 0; i-- {
		if u, ok := blk.Instructions[i].(*UpsilonInst); ok && u.Identifier == identifier {
			return u.Value, true
		}
		if p, ok := blk.Instructions[i].(*PhiInst); ok && p.Identifier == identifier {
			return p, true
		}
	}
	return nil, false
}
