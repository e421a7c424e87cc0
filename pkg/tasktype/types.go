package tasktype

type Type string

const (
	Aggregate Type = "data:aggregate"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) Queue() string {
	return "default"
}

func (t Type) IsValid() bool {
	return t == Aggregate
}

var AllTypes = []Type{
	Aggregate,
}
