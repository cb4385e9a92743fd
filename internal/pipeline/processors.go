package pipeline

import (
	"github.com/uselesslang/useless/internal/evaluator"
	"github.com/uselesslang/useless/internal/lexer"
	"github.com/uselesslang/useless/internal/parser"
)

// LexProcessor turns source text into a token stream.
type LexProcessor struct{}

func (LexProcessor) Process(ctx *PipelineContext) *PipelineContext {
	ctx.Tokens = lexer.New(ctx.Source).Tokens()
	return ctx
}

// ParseProcessor builds the program AST from the token stream.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	program, err := parser.New(ctx.Tokens).Parse()
	if err != nil {
		ctx.ParseErr = err
		return ctx
	}
	program.File = ctx.File
	ctx.Program = program
	return ctx
}

// InterpretProcessor runs the program. Skipped when parsing failed.
type InterpretProcessor struct{}

func (InterpretProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.ParseErr != nil || ctx.Program == nil {
		return ctx
	}
	eval := evaluator.New(ctx.Policy, ctx.Presenter, ctx.Logger)
	ctx.RuntimeErr = eval.Interpret(ctx.Program)
	return ctx
}

// RunSource is the convenience driver: lex, parse, interpret.
func RunSource(ctx *PipelineContext) *PipelineContext {
	return New(LexProcessor{}, ParseProcessor{}, InterpretProcessor{}).Run(ctx)
}
