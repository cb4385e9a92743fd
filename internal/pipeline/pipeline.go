// Package pipeline chains the processing stages a source file goes through:
// lexing, parsing, interpretation. Stages communicate through one shared
// context so a driver can stop after any stage or inspect intermediate state.
package pipeline

import (
	"log/slog"

	"github.com/uselesslang/useless/internal/ast"
	"github.com/uselesslang/useless/internal/chaos"
	"github.com/uselesslang/useless/internal/evaluator"
	"github.com/uselesslang/useless/internal/token"
)

// PipelineContext carries the state of one run through the stages.
type PipelineContext struct {
	File   string
	Source string

	Tokens  []token.Token
	Program *ast.Program

	Policy    *chaos.Policy
	Presenter evaluator.Presenter
	Logger    *slog.Logger

	// ParseErr is set by the parse stage; RuntimeErr by the interpret
	// stage. Later stages skip when an earlier stage failed.
	ParseErr   error
	RuntimeErr *evaluator.Error
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is an ordered sequence of processors.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. Stages are responsible for skipping
// themselves when the context already carries an error.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
