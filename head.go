package symkernel

// Head identifies the operator of a function application. Built-in operators
// are interned to small integers at construction; any other name maps to
// HeadUnknown and is carried by the node's name.
type Head uint16

const (
	HeadUnknown Head = iota

	HeadAdd
	HeadMultiply
	HeadPower
	HeadSubtract
	HeadNegate
	HeadDivide
	HeadSqrt
	HeadRoot
	HeadSquare
	HeadExp
	HeadRational

	HeadLn
	HeadLog
	HeadAbs

	HeadSin
	HeadCos
	HeadTan
	HeadCot
	HeadSec
	HeadCsc
	HeadArcsin
	HeadArccos
	HeadArctan
	HeadSinh
	HeadCosh
	HeadTanh
	HeadCoth
	HeadSech
	HeadCsch

	HeadLess
	HeadLessEqual
	HeadGreater
	HeadGreaterEqual
	HeadEqual
	HeadNotEqual

	HeadList
	HeadRange
	HeadLinspace
	HeadTuple
	HeadDictionary
	HeadKeyValuePair
	HeadSet

	headCount
)

type headFlag uint8

const (
	flagOpaque headFlag = 1 << iota
	flagEven
	flagOdd
	flagRelational
	flagTrig
)

type headInfo struct {
	name  string
	flags headFlag
}

var heads = [headCount]headInfo{
	HeadUnknown:  {name: ""},
	HeadAdd:      {name: "Add"},
	HeadMultiply: {name: "Multiply"},
	HeadPower:    {name: "Power"},
	HeadSubtract: {name: "Subtract"},
	HeadNegate:   {name: "Negate"},
	HeadDivide:   {name: "Divide"},
	HeadSqrt:     {name: "Sqrt"},
	HeadRoot:     {name: "Root"},
	HeadSquare:   {name: "Square"},
	HeadExp:      {name: "Exp"},
	HeadRational: {name: "Rational"},

	HeadLn:  {name: "Ln"},
	HeadLog: {name: "Log"},
	HeadAbs: {name: "Abs"},

	HeadSin:    {name: "Sin", flags: flagTrig | flagOdd},
	HeadCos:    {name: "Cos", flags: flagTrig | flagEven},
	HeadTan:    {name: "Tan", flags: flagTrig | flagOdd},
	HeadCot:    {name: "Cot", flags: flagTrig | flagOdd},
	HeadSec:    {name: "Sec", flags: flagTrig | flagEven},
	HeadCsc:    {name: "Csc", flags: flagTrig | flagOdd},
	HeadArcsin: {name: "Arcsin", flags: flagTrig | flagOdd},
	HeadArccos: {name: "Arccos", flags: flagTrig},
	HeadArctan: {name: "Arctan", flags: flagTrig | flagOdd},
	HeadSinh:   {name: "Sinh", flags: flagTrig | flagOdd},
	HeadCosh:   {name: "Cosh", flags: flagTrig | flagEven},
	HeadTanh:   {name: "Tanh", flags: flagTrig | flagOdd},
	HeadCoth:   {name: "Coth", flags: flagTrig | flagOdd},
	HeadSech:   {name: "Sech", flags: flagTrig | flagEven},
	HeadCsch:   {name: "Csch", flags: flagTrig | flagOdd},

	HeadLess:         {name: "Less", flags: flagRelational},
	HeadLessEqual:    {name: "LessEqual", flags: flagRelational},
	HeadGreater:      {name: "Greater", flags: flagRelational},
	HeadGreaterEqual: {name: "GreaterEqual", flags: flagRelational},
	HeadEqual:        {name: "Equal", flags: flagRelational},
	HeadNotEqual:     {name: "NotEqual", flags: flagRelational},

	HeadList:         {name: "List", flags: flagOpaque},
	HeadRange:        {name: "Range", flags: flagOpaque},
	HeadLinspace:     {name: "Linspace", flags: flagOpaque},
	HeadTuple:        {name: "Tuple", flags: flagOpaque},
	HeadDictionary:   {name: "Dictionary", flags: flagOpaque},
	HeadKeyValuePair: {name: "KeyValuePair", flags: flagOpaque},
	HeadSet:          {name: "Set", flags: flagOpaque},
}

var headByName = func() map[string]Head {
	m := make(map[string]Head, headCount)
	for h := HeadUnknown + 1; h < headCount; h++ {
		m[heads[h].name] = h
	}
	return m
}()

// LookupHead returns the interned head for name, or HeadUnknown.
func LookupHead(name string) Head { return headByName[name] }

func (h Head) String() string {
	if h >= headCount {
		return ""
	}
	return heads[h].name
}

func (h Head) has(f headFlag) bool { return h < headCount && heads[h].flags&f != 0 }

// IsOpaque reports whether h belongs to the collections layer. Opaque
// applications are atoms for the kernel: never descended into, never
// rewritten.
func (h Head) IsOpaque() bool { return h.has(flagOpaque) }

// IsEven reports whether f(-x) = f(x) for the function h.
func (h Head) IsEven() bool { return h.has(flagEven) }

// IsOdd reports whether f(-x) = -f(x) for the function h.
func (h Head) IsOdd() bool { return h.has(flagOdd) }

func (h Head) IsRelational() bool { return h.has(flagRelational) }

func (h Head) isTrig() bool { return h.has(flagTrig) }
