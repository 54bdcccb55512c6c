// codegen.go - 方法级代码生成器
//
// CodeGen 持有一个方法的指令流与临时标签，按顺序为每个内建函数节点生成代码，
// 并记录节点结果所在的物理寄存器供后续节点使用。

package jit

import (
	"go.uber.org/zap"

	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// CodeGen ARM64 代码生成器（每个方法一个实例，不可并发使用）
type CodeGen struct {
	asm     *platform.Assembler
	log     *zap.Logger
	results map[*HWIntrinsicNode]platform.Reg
}

// NewCodeGen 创建代码生成器
func NewCodeGen(log *zap.Logger) *CodeGen {
	if log == nil {
		log = zap.NewNop()
	}
	return &CodeGen{
		asm:     platform.NewAssembler(),
		log:     log,
		results: make(map[*HWIntrinsicNode]platform.Reg),
	}
}

// GetEmitter 返回指令发射器
func (cg *CodeGen) GetEmitter() *platform.Assembler {
	return cg.asm
}

// Reset 清空指令流与结果绑定
func (cg *CodeGen) Reset() {
	cg.asm.Reset()
	cg.results = make(map[*HWIntrinsicNode]platform.Reg)
}

// createTempLabel 创建临时标签
func (cg *CodeGen) createTempLabel() platform.Label {
	return cg.asm.CreateLabel()
}

// defineInlineTempLabel 把临时标签绑定到当前位置
func (cg *CodeGen) defineInlineTempLabel(l platform.Label) {
	cg.asm.DefineLabel(l)
}

// produceReg 记录节点结果所在的寄存器
func (cg *CodeGen) produceReg(node *HWIntrinsicNode) {
	if node.Reg == platform.RegNA {
		return
	}
	cg.results[node] = node.Reg
	if node.Def != nil && node.Def.Reg == platform.RegNA {
		node.Def.Reg = node.Reg
	}
}

// ResultReg 返回节点结果绑定的寄存器
func (cg *CodeGen) ResultReg(node *HWIntrinsicNode) (platform.Reg, bool) {
	r, ok := cg.results[node]
	return r, ok
}

// GenMethod 依次为节点生成代码
func (cg *CodeGen) GenMethod(nodes []*HWIntrinsicNode) {
	for _, node := range nodes {
		cg.genNode(node)
	}
}

// genNode 为单个节点生成代码并记录调试日志
func (cg *CodeGen) genNode(node *HWIntrinsicNode) {
	before := cg.asm.Len()
	cg.GenHWIntrinsic(node)
	if ce := cg.log.Check(zap.DebugLevel, "hwintrinsic"); ce != nil {
		ce.Write(
			zap.Stringer("node", node),
			zap.Int("instrs", cg.asm.Len()-before),
		)
	}
}
