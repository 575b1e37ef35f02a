package tabular

// Collection is an insertion-ordered mapping from dataset name to Table.
// The order matters: transforms that fold multiple datasets walk the
// collection in the order the datasets were added, which keeps output
// and error reporting deterministic.
type Collection struct {
	names  []string
	tables map[string]*Table
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{tables: make(map[string]*Table)}
}

// Set adds or replaces a dataset. A new name is appended to the
// iteration order; replacing keeps the original position.
func (c *Collection) Set(name string, t *Table) {
	if _, ok := c.tables[name]; !ok {
		c.names = append(c.names, name)
	}
	c.tables[name] = t
}

// Get returns the dataset with the given name.
func (c *Collection) Get(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Names returns the dataset names in insertion order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of datasets.
func (c *Collection) Len() int {
	return len(c.names)
}
