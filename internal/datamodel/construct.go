package datamodel

// The constructors below are the bridges' only way to add leaves: the tree
// shape is fixed at startup (spec §3.1 — "constructed shape is static") and
// every leaf's serialization format is nailed down at the call site instead
// of being rediscovered per-write.

func NewBoolLeaf(t *Tree, path string) *Leaf[bool] {
	return newLeafAt(t, path, FormatBool)
}

func NewUint8Leaf(t *Tree, path string) *Leaf[uint8] {
	return newLeafAt(t, path, FormatUint8)
}

func NewUint16Leaf(t *Tree, path string) *Leaf[uint16] {
	return newLeafAt(t, path, FormatUint16)
}

func NewUint32Leaf(t *Tree, path string) *Leaf[uint32] {
	return newLeafAt(t, path, FormatUint32)
}

func NewInt8Leaf(t *Tree, path string) *Leaf[int8] {
	return newLeafAt(t, path, FormatInt8)
}

func NewStringLeaf(t *Tree, path string) *Leaf[string] {
	return newLeafAt(t, path, FormatString)
}

func NewTenthsInt16Leaf(t *Tree, path string) *Leaf[Tenths[int16]] {
	return newLeafAt(t, path, FormatTenthsInt16)
}

func NewTenthsUint16Leaf(t *Tree, path string) *Leaf[Tenths[uint16]] {
	return newLeafAt(t, path, FormatTenthsUint16)
}

func NewTenthsUint32Leaf(t *Tree, path string) *Leaf[Tenths[uint32]] {
	return newLeafAt(t, path, FormatTenthsUint32)
}

func NewHundredthsUint8Leaf(t *Tree, path string) *Leaf[Hundredths[uint8]] {
	return newLeafAt(t, path, FormatHundredthsUint8)
}

func NewHundredthsUint16Leaf(t *Tree, path string) *Leaf[Hundredths[uint16]] {
	return newLeafAt(t, path, FormatHundredthsUint16)
}
