package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
)

type Kind uint8

const (
	KindLiteral Kind = iota
	KindRun
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindRun:
		return "run"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Token is one run or literal of the stream grammar. For a run, Value is the
// pixel value and Length the number of pixels. For a literal, Length is 1.
type Token struct {
	Kind   Kind
	Value  byte
	Length int
}

func Run(pixel byte, length int) Token {
	return Token{Kind: KindRun, Value: pixel, Length: length}
}

func Literal(b byte) Token {
	return Token{Kind: KindLiteral, Value: b, Length: 1}
}

// Escaped reports whether the token is a literal marker byte, which costs
// two bytes on the wire.
func (t Token) Escaped() bool {
	return t.Kind == KindLiteral && isMarker(t.Value)
}

// AppendTo serializes the token. A run longer than MaxRun is split.
func (t Token) AppendTo(dst []byte) []byte {
	if t.Kind == KindRun {
		return appendRun(dst, t.Value, t.Length)
	}
	return appendLiteral(dst, t.Value)
}

func (t Token) String() string {
	if t.Kind == KindRun {
		return fmt.Sprintf("run(%#02x x %d)", t.Value, t.Length)
	}
	return fmt.Sprintf("literal(%#02x)", t.Value)
}

// ReadToken reads the next token. It returns io.EOF only when r is exhausted
// at a token boundary.
func ReadToken(r io.ByteReader) (Token, error) {
	t, err := r.ReadByte()
	if err != nil {
		return Token{}, err
	}

	if !isMarker(t) {
		return Literal(t), nil
	}

	n, err := r.ReadByte()
	if err != nil {
		return Token{}, truncated(err)
	}

	if n == Escape {
		return Literal(t), nil
	}

	length := int(n)
	if n&continued != 0 {
		hi, err := r.ReadByte()
		if err != nil {
			return Token{}, truncated(err)
		}
		length = int(n&maxShortRun) | int(hi)<<7
	}

	if length < 1 || length > MaxRun {
		return Token{}, fmt.Errorf("%w: %d", ErrInvalidRunLength, length)
	}

	return Run(pixelFor(t), length), nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrTruncatedStream
	}
	return err
}

// Tokens walks a bare stream. Iteration stops after the first error.
func Tokens(src []byte) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		r := bytes.NewReader(src)
		for {
			tok, err := ReadToken(r)
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}
