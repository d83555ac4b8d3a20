// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typeconv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
)

var (
	typeLexer = lexer.Must(lexer.Regexp(
		`(\s+)` +
			`|(?P<Ident>[a-zA-Z_][a-zA-Z0-9_/]*)` +
			`|(?P<Int>\d+)` +
			`|(?P<Punct>[<>(),:])`,
	))

	typeParser = participle.MustBuild(
		&typeExpr{},
		participle.Lexer(typeLexer),
	)
)

// typeExpr is either a struct type or a named type with an optional element
// type and an optional parameter list, e.g. fixed_size_list<int64>(3).
type typeExpr struct {
	Struct *structExpr ` ( @@ `
	Name   string      `   | @Ident `
	Elem   *typeExpr   `     [ "<" @@ ">" ] `
	Params []string    `     [ "(" @(Ident | Int) { "," @(Ident | Int) } ")" ] )`
}

type structExpr struct {
	Keyword string       `@"struct" "<" `
	Fields  []*fieldExpr ` [ @@ { "," @@ } ] ">" `
}

type fieldExpr struct {
	Name string    `@Ident ":" `
	Type *typeExpr `@@`
}

var simpleTypes = map[string]arrow.DataType{
	"null":         arrow.Null,
	"bool":         arrow.FixedWidthTypes.Boolean,
	"int8":         arrow.PrimitiveTypes.Int8,
	"int16":        arrow.PrimitiveTypes.Int16,
	"int32":        arrow.PrimitiveTypes.Int32,
	"int64":        arrow.PrimitiveTypes.Int64,
	"uint8":        arrow.PrimitiveTypes.Uint8,
	"uint16":       arrow.PrimitiveTypes.Uint16,
	"uint32":       arrow.PrimitiveTypes.Uint32,
	"uint64":       arrow.PrimitiveTypes.Uint64,
	"float16":      arrow.FixedWidthTypes.Float16,
	"float32":      arrow.PrimitiveTypes.Float32,
	"float64":      arrow.PrimitiveTypes.Float64,
	"utf8":         arrow.BinaryTypes.String,
	"large_utf8":   arrow.BinaryTypes.LargeString,
	"binary":       arrow.BinaryTypes.Binary,
	"large_binary": arrow.BinaryTypes.LargeBinary,
	"date32":       arrow.FixedWidthTypes.Date32,
	"date64":       arrow.FixedWidthTypes.Date64,
}

var timeUnits = map[string]arrow.TimeUnit{
	"s":  arrow.Second,
	"ms": arrow.Millisecond,
	"us": arrow.Microsecond,
	"ns": arrow.Nanosecond,
}

// ParseType parses the textual form of a type, as produced by TypeString.
func ParseType(s string) (arrow.DataType, error) {
	var e typeExpr
	if err := typeParser.ParseString(s, &e); err != nil {
		return nil, pgerror.Wrapf(err, pgcode.Syntax, "parsing type %q", s)
	}
	t, err := e.toType()
	if err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidParameterValue, "parsing type %q", s)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) arrow.DataType {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *typeExpr) toType() (arrow.DataType, error) {
	if e.Struct != nil {
		fields := make([]arrow.Field, len(e.Struct.Fields))
		for i, f := range e.Struct.Fields {
			t, err := f.Type.toType()
			if err != nil {
				return nil, err
			}
			fields[i] = arrow.Field{Name: f.Name, Type: t, Nullable: true}
		}
		return arrow.StructOf(fields...), nil
	}

	name := strings.ToLower(e.Name)
	if t, ok := simpleTypes[name]; ok {
		if e.Elem != nil || len(e.Params) != 0 {
			return nil, errors.Newf("type %s takes no parameters", errors.Safe(name))
		}
		return t, nil
	}

	var elem arrow.DataType
	if e.Elem != nil {
		var err error
		if elem, err = e.Elem.toType(); err != nil {
			return nil, err
		}
	}
	switch name {
	case "list", "large_list":
		if elem == nil || len(e.Params) != 0 {
			return nil, errors.Newf("expected %s<T>", errors.Safe(name))
		}
		if name == "list" {
			return arrow.ListOf(elem), nil
		}
		return arrow.LargeListOf(elem), nil
	case "fixed_size_list":
		if elem == nil || len(e.Params) != 1 {
			return nil, errors.New("expected fixed_size_list<T>(n)")
		}
		n, err := parseInt(e.Params[0])
		if err != nil {
			return nil, err
		}
		return arrow.FixedSizeListOf(n, elem), nil
	}

	if elem != nil {
		return nil, errors.Newf("type %s takes no element type", errors.Safe(name))
	}
	switch name {
	case "fixed_size_binary":
		if len(e.Params) != 1 {
			return nil, errors.New("expected fixed_size_binary(n)")
		}
		n, err := parseInt(e.Params[0])
		if err != nil {
			return nil, err
		}
		return &arrow.FixedSizeBinaryType{ByteWidth: int(n)}, nil
	case "decimal128":
		if len(e.Params) != 2 {
			return nil, errors.New("expected decimal128(precision, scale)")
		}
		p, err := parseInt(e.Params[0])
		if err != nil {
			return nil, err
		}
		s, err := parseInt(e.Params[1])
		if err != nil {
			return nil, err
		}
		return &arrow.Decimal128Type{Precision: p, Scale: s}, nil
	case "time32", "time64", "duration", "timestamp":
		if len(e.Params) == 0 || len(e.Params) > 2 ||
			(len(e.Params) == 2 && name != "timestamp") {
			return nil, errors.Newf("wrong number of parameters for %s", errors.Safe(name))
		}
		unit, ok := timeUnits[e.Params[0]]
		if !ok {
			return nil, errors.Newf("unknown time unit %q", e.Params[0])
		}
		switch name {
		case "time32":
			if unit != arrow.Second && unit != arrow.Millisecond {
				return nil, errors.Newf("time32 does not support unit %s", unit)
			}
			return &arrow.Time32Type{Unit: unit}, nil
		case "time64":
			if unit != arrow.Microsecond && unit != arrow.Nanosecond {
				return nil, errors.Newf("time64 does not support unit %s", unit)
			}
			return &arrow.Time64Type{Unit: unit}, nil
		case "duration":
			return &arrow.DurationType{Unit: unit}, nil
		}
		ts := &arrow.TimestampType{Unit: unit}
		if len(e.Params) == 2 {
			ts.TimeZone = e.Params[1]
		}
		return ts, nil
	}
	return nil, errors.Newf("unknown type %q", e.Name)
}

func parseInt(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid type parameter")
	}
	return int32(n), nil
}

// TypeString formats t in the syntax accepted by ParseType.
func TypeString(t arrow.DataType) string {
	if t == nil {
		return "null"
	}
	switch t := t.(type) {
	case *arrow.ListType:
		return fmt.Sprintf("list<%s>", TypeString(t.Elem()))
	case *arrow.LargeListType:
		return fmt.Sprintf("large_list<%s>", TypeString(t.Elem()))
	case *arrow.FixedSizeListType:
		return fmt.Sprintf("fixed_size_list<%s>(%d)", TypeString(t.Elem()), t.Len())
	case *arrow.StructType:
		var b strings.Builder
		b.WriteString("struct<")
		for i, f := range t.Fields() {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", f.Name, TypeString(f.Type))
		}
		b.WriteString(">")
		return b.String()
	case *arrow.FixedSizeBinaryType:
		return fmt.Sprintf("fixed_size_binary(%d)", t.ByteWidth)
	case *arrow.Decimal128Type:
		return fmt.Sprintf("decimal128(%d,%d)", t.Precision, t.Scale)
	case *arrow.Time32Type:
		return fmt.Sprintf("time32(%s)", t.Unit)
	case *arrow.Time64Type:
		return fmt.Sprintf("time64(%s)", t.Unit)
	case *arrow.DurationType:
		return fmt.Sprintf("duration(%s)", t.Unit)
	case *arrow.TimestampType:
		if t.TimeZone != "" {
			return fmt.Sprintf("timestamp(%s,%s)", t.Unit, t.TimeZone)
		}
		return fmt.Sprintf("timestamp(%s)", t.Unit)
	}
	for name, st := range simpleTypes {
		if arrow.TypeEqual(st, t) {
			return name
		}
	}
	return t.String()
}
