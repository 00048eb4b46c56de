package decl

type TypeTag int

const (
	TypeTagUnknown TypeTag = iota
	TypeTagNone
	TypeTagNum
	TypeTagStr
	TypeTagSym
	TypeTagAtom
	TypeTagBool
	TypeTagList
	TypeTagFunc
)

// Type identifies which variant of the Value union a value holds.
type Type struct {
	Tag  TypeTag
	Name string
}

// --- Type singletons

var (
	NoneType = &Type{Tag: TypeTagNone, Name: "None"}
	NumType  = &Type{Tag: TypeTagNum, Name: "Num"}
	StrType  = &Type{Tag: TypeTagStr, Name: "Str"}
	SymType  = &Type{Tag: TypeTagSym, Name: "Sym"}
	AtomType = &Type{Tag: TypeTagAtom, Name: "Atom"}
	BoolType = &Type{Tag: TypeTagBool, Name: "Bool"}
	ListType = &Type{Tag: TypeTagList, Name: "List"}
	FuncType = &Type{Tag: TypeTagFunc, Name: "Func"}
)

// String representation of the type
func (t *Type) String() string {
	if t == nil {
		return "<nil_type>"
	}
	return t.Name
}

// Equals checks if two types denote the same variant.
func (t *Type) Equals(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.Tag == other.Tag
}
