package jit

import (
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// ErrISANotSupported 方法使用了未启用的指令集
var ErrISANotSupported = stderrors.New("instruction set not enabled")

// ErrUnallocated 寄存器分配关闭时方法中仍有虚拟值
var ErrUnallocated = stderrors.New("virtual value without register")

// ============================================================================
// 编译器
// ============================================================================

// Compiler 方法编译驱动，可被多个 goroutine 同时使用
type Compiler struct {
	config *Config
	log    *zap.Logger
	cache  sync.Map // map[*Method]*CompiledMethod

	// 编译统计
	stats compilerStats
}

type compilerStats struct {
	compiled      atomic.Int64
	failed        atomic.Int64
	rejected      atomic.Int64
	nodes         atomic.Int64
	instrs        atomic.Int64
	codeBytes     atomic.Int64
	compileTimeNs atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// NewCompiler 创建编译器
func NewCompiler(config *Config, log *zap.Logger) *Compiler {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{
		config: config,
		log:    log,
	}
}

// ============================================================================
// 编译接口
// ============================================================================

// Compile 编译一个方法
//
// 输入错误（未启用的指令集、寄存器不足）作为普通错误返回；
// 代码生成中的断言失败以 *errors.InternalError 返回，不产生任何部分代码。
func (c *Compiler) Compile(m *Method) (*CompiledMethod, error) {
	if m == nil {
		return nil, nil
	}

	// 检查缓存
	if cached, ok := c.cache.Load(m); ok {
		c.stats.cacheHits.Inc()
		return cached.(*CompiledMethod), nil
	}
	c.stats.cacheMisses.Inc()

	start := time.Now()
	log := c.log.With(zap.String("method", m.Name))

	if err := c.checkISAs(m); err != nil {
		c.stats.rejected.Inc()
		return nil, err
	}

	bindings, temps, err := c.assignRegisters(m)
	if err != nil {
		c.stats.rejected.Inc()
		return nil, fmt.Errorf("register allocation for %s: %w", m.Name, err)
	}

	code, err := c.generate(m, log)
	if err != nil {
		c.stats.failed.Inc()
		return nil, err
	}
	code.Bindings = bindings
	code.Temps = temps

	elapsed := time.Since(start)
	c.stats.compiled.Inc()
	c.stats.nodes.Add(int64(len(m.Nodes)))
	c.stats.instrs.Add(int64(len(code.Instrs)))
	c.stats.codeBytes.Add(int64(len(code.Code)))
	c.stats.compileTimeNs.Add(elapsed.Nanoseconds())

	log.Debug("method compiled",
		zap.Int("nodes", len(m.Nodes)),
		zap.Int("instrs", len(code.Instrs)),
		zap.Int("bytes", len(code.Code)),
		zap.Duration("elapsed", elapsed),
	)

	// 缓存结果
	c.cache.Store(m, code)
	return code, nil
}

// CompileAll 并发编译多个方法，结果与输入顺序一致；所有错误合并返回。
// 同一个 *Method 出现多次时只编译一次（寄存器分配会改写节点），重复项共享结果。
func (c *Compiler) CompileAll(methods []*Method) ([]*CompiledMethod, error) {
	results := make([]*CompiledMethod, len(methods))
	errs := make([]error, len(methods))
	first := make(map[*Method]int, len(methods))

	var wg sync.WaitGroup
	for i, m := range methods {
		if _, seen := first[m]; seen {
			continue
		}
		first[m] = i

		wg.Add(1)
		go func(i int, m *Method) {
			defer wg.Done()
			results[i], errs[i] = c.Compile(m)
		}(i, m)
	}
	wg.Wait()

	for i, m := range methods {
		if j := first[m]; j != i {
			results[i] = results[j]
		}
	}
	return results, multierr.Combine(errs...)
}

// IsCompiled 检查方法是否已编译
func (c *Compiler) IsCompiled(m *Method) bool {
	_, ok := c.cache.Load(m)
	return ok
}

// GetStats 返回统计快照
func (c *Compiler) GetStats() Stats {
	return Stats{
		Compiled:      c.stats.compiled.Load(),
		Failed:        c.stats.failed.Load(),
		Rejected:      c.stats.rejected.Load(),
		Nodes:         c.stats.nodes.Load(),
		Instrs:        c.stats.instrs.Load(),
		CodeBytes:     c.stats.codeBytes.Load(),
		CompileTimeNs: c.stats.compileTimeNs.Load(),
		CacheHits:     c.stats.cacheHits.Load(),
		CacheMisses:   c.stats.cacheMisses.Load(),
	}
}

// ============================================================================
// 编译步骤
// ============================================================================

// checkISAs 指令集检查
func (c *Compiler) checkISAs(m *Method) error {
	for i, node := range m.Nodes {
		if isa := LookupISA(node.ID); !c.config.Supports(isa) {
			return fmt.Errorf("%s: node %d (%s) requires %s: %w", m.Name, i, node.ID, isa, ErrISANotSupported)
		}
	}
	return nil
}

// assignRegisters 为虚拟值分配寄存器；已全部是物理寄存器时跳过
func (c *Compiler) assignRegisters(m *Method) (map[string]platform.Reg, map[int][]platform.Reg, error) {
	if !hasVirtualValues(m) {
		return nil, collectTemps(m), nil
	}
	if !c.config.Allocate {
		return nil, nil, ErrUnallocated
	}

	alloc, err := NewRegisterAllocator(nil, nil).Allocate(m.Args, m.Nodes)
	if err != nil {
		return nil, nil, err
	}
	return alloc.ValueRegs, collectTemps(m), nil
}

func hasVirtualValues(m *Method) bool {
	for _, arg := range m.Args {
		if arg.IsVirtual() {
			return true
		}
	}
	for _, node := range m.Nodes {
		if node.Def != nil && node.Def.IsVirtual() {
			return true
		}
		for _, op := range node.Ops {
			if op.IsVirtual() {
				return true
			}
		}
	}
	return false
}

func collectTemps(m *Method) map[int][]platform.Reg {
	temps := make(map[int][]platform.Reg)
	for i, node := range m.Nodes {
		if len(node.InternalRegs) > 0 {
			temps[i] = node.InternalRegs
		}
	}
	return temps
}

// generate 生成机器码，把内部缺陷转换为错误
func (c *Compiler) generate(m *Method, log *zap.Logger) (cm *CompiledMethod, err error) {
	cg := NewCodeGen(log)
	current := -1

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie := errors.AsInternal(r)
		if ie == nil {
			panic(r)
		}
		fields := []zap.Field{
			zap.String("code", ie.Code),
			zap.String("error", ie.Message),
			zap.Int("node", current),
		}
		if current >= 0 && current < len(m.Nodes) {
			ie.WithNote("while generating node %d: %s", current, m.Nodes[current])
			fields = append(fields, zap.Stringer("intrinsic", m.Nodes[current].ID))
		}
		log.Error("internal code generation error", fields...)
		cm, err = nil, ie
	}()

	for i, node := range m.Nodes {
		current = i
		cg.genNode(node)
	}
	current = -1

	code := cg.GetEmitter().Code()
	instrs := cg.GetEmitter().Instrs()

	return &CompiledMethod{
		Name:   m.Name,
		Code:   append([]byte(nil), code...),
		Instrs: append([]platform.Instr(nil), instrs...),
		Labels: cg.GetEmitter().Labels(),
	}, nil
}
