package resource

// Screen is the variant-erased view of a Controller, letting the shell and
// CLI hold the eight resource controllers in one slice. Every Controller[R]
// satisfies it.
type Screen interface {
	Name() string
	Title() string
	Columns() []string
	Fields() []Field

	List() error
	Rows() [][]string
	Len() int
	RecordID(i int) (int64, bool)

	BeginEditIndex(i int) bool
	CancelEdit()
	SetField(name, value string)
	FormValue(name string) string
	Submit() error
	RemoveIndex(i int) error

	Busy() bool
	Editing() (bool, int64)
}
