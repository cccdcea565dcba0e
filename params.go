package vtcore

// maxParams bounds the number of parameter groups the parser retains;
// excess groups are silently dropped, not an error.
const maxParams = 32

// maxParamValue is the saturation ceiling for a single parameter or
// sub-parameter value.
const maxParamValue = 65535

// Param is one CSI parameter group: a primary value plus any
// colon-separated sub-parameters (e.g. `4:3` for curly underline, or
// `38:2:255:0:0` for an RGB color).
type Param struct {
	Value int32
	Subs  []int32
}

// Params accumulates up to maxParams parameter groups while the parser
// is in a CSI parameter state. Absent or empty groups read as 0.
type Params struct {
	groups       []Param
	inSub        bool
	sawAnyDigits bool
}

// NewParams returns an empty Params accumulator.
func NewParams() *Params {
	return &Params{groups: make([]Param, 0, 8)}
}

// Reset clears the accumulator for reuse between sequences.
func (p *Params) Reset() {
	p.groups = p.groups[:0]
	p.inSub = false
	p.sawAnyDigits = false
}

// ensureGroup starts the first group if none exists yet, so a digit,
// separator or colon always has a current group to act on.
func (p *Params) ensureGroup() {
	if len(p.groups) == 0 {
		p.groups = append(p.groups, Param{})
	}
}

// Digit folds a decimal digit byte into the current value, saturating
// at maxParamValue. If called before any separator, it starts the
// first group.
func (p *Params) Digit(b byte) {
	if len(p.groups) >= maxParams {
		return
	}
	p.ensureGroup()
	p.sawAnyDigits = true
	last := len(p.groups) - 1
	if p.inSub {
		subs := p.groups[last].Subs
		i := len(subs) - 1
		v := int64(subs[i])*10 + int64(b-'0')
		if v > maxParamValue {
			v = maxParamValue
		}
		subs[i] = int32(v)
		p.groups[last].Subs = subs
		return
	}
	v := int64(p.groups[last].Value)*10 + int64(b-'0')
	if v > maxParamValue {
		v = maxParamValue
	}
	p.groups[last].Value = int32(v)
}

// Semicolon starts a new top-level parameter group.
func (p *Params) Semicolon() {
	p.ensureGroup()
	if len(p.groups) >= maxParams {
		return
	}
	p.groups = append(p.groups, Param{})
	p.inSub = false
}

// Colon starts a new sub-parameter within the current group.
func (p *Params) Colon() {
	p.ensureGroup()
	last := len(p.groups) - 1
	p.groups[last].Subs = append(p.groups[last].Subs, 0)
	p.inSub = true
}

// Len returns the number of parameter groups collected.
func (p *Params) Len() int {
	return len(p.groups)
}

// Get returns the primary value of group i, or def if i is absent. A
// group left empty (e.g. between consecutive semicolons) reads as 0.
func (p *Params) Get(i int, def int) int {
	if i < 0 || i >= len(p.groups) {
		return def
	}
	return int(p.groups[i].Value)
}

// GetOrDefault1 is Get with the common CSI default of 1, also applied
// when the value is explicitly 0 (xterm treats `CSI 0 A` as `CSI A`).
func (p *Params) GetOrDefault1(i int) int {
	v := p.Get(i, 1)
	if v == 0 {
		return 1
	}
	return v
}

// Subs returns the sub-parameters of group i, or nil.
func (p *Params) Subs(i int) []int32 {
	if i < 0 || i >= len(p.groups) {
		return nil
	}
	return p.groups[i].Subs
}

// All returns every collected group, for dispatch code that needs to
// walk the whole list (e.g. SGR's sequential consumption).
func (p *Params) All() []Param {
	return p.groups
}

// IsEmpty reports whether no parameter bytes were seen at all (used to
// distinguish `CSI m` from `CSI 0 m`, though both mean SGR reset).
func (p *Params) IsEmpty() bool {
	return !p.sawAnyDigits && len(p.groups) == 0
}
