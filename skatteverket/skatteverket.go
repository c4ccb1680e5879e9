// Package skatteverket renders tax lines into the Swedish Tax Agency's SRU
// transfer format, as one or more K4 (section D) form blocks.
//
// The layout follows SKV 269: a #BLANKETT header per form, an #IDENTITET
// record with the filer's organisation number and the production timestamp,
// numbered #UPPGIFT field records, and #BLANKETTSLUT / #FIL_SLUT markers.
package skatteverket

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/oskarw/cryptotax"
)

// ErrNotCash is returned when a tax line still carries coupon components.
// The K4 form only takes amounts in Swedish kronor, so every line must have
// been resolved to cash before filing.
var ErrNotCash = errors.New("tax line is not fully cash")

// now is replaced in tests to pin the assessment year and the #IDENTITET
// timestamp.
var now = time.Now

// A K4 form block holds at most seven section D rows.
const maxGroups = 7

// SruFile is a complete SRU transfer file: a sequence of filled K4 forms
// followed by the end-of-file marker.
type SruFile struct {
	Forms []Form
}

// Form is one K4 blankettblock for a single filer.
type Form struct {
	Type   string // blankettblock identifier, e.g. "K4-2022P4"
	OrgNum string // person or organisation number, SSÅÅMMDDNNNK
	Name   string // optional filer name, shown on the receipt

	groups []group
}

// field is a single #UPPGIFT record.
type field struct {
	code  string
	value string
}

// group is the set of field records for one section D row.
type group []field

// NewSruFile distributes tax lines over K4 forms for the previous calendar
// year, seven lines per form. Every line must resolve to cash amounts; a
// line with coupon components fails with ErrNotCash.
func NewSruFile(lines []cryptotax.TaxableTrade, orgNum, name string) (*SruFile, error) {
	formType := fmt.Sprintf("K4-%dP4", now().UTC().Year()-1)

	form := Form{Type: formType, OrgNum: orgNum, Name: name}
	var forms []Form
	for _, line := range lines {
		if len(form.groups) == maxGroups {
			forms = append(forms, form)
			form = Form{Type: formType, OrgNum: orgNum, Name: name}
		}
		g, err := newGroup(len(form.groups)+1, line)
		if err != nil {
			return nil, err
		}
		form.groups = append(form.groups, g)
	}
	forms = append(forms, form)

	return &SruFile{Forms: forms}, nil
}

// newGroup maps one tax line to the section D field codes 34i0 through 34i5,
// where i is the 1-based row number on the form. Amounts are reported as
// absolute whole kronor; a positive net fills the profit code 34i4 and a
// negative net the loss code 34i5.
func newGroup(i int, line cryptotax.TaxableTrade) (group, error) {
	costs, ok := line.SumCashCosts()
	if !ok {
		return nil, fmt.Errorf("%s: %w", line.Currency, ErrNotCash)
	}
	net, ok := line.NetIncome()
	if !ok {
		return nil, fmt.Errorf("%s: %w", line.Currency, ErrNotCash)
	}

	g := group{
		{code: fmt.Sprintf("34%d0", i), value: line.Amount.Abs().RoundBank(0).String()},
		{code: fmt.Sprintf("34%d1", i), value: line.Currency},
		{code: fmt.Sprintf("34%d2", i), value: line.Income.Amount().Abs().RoundBank(0).String()},
		{code: fmt.Sprintf("34%d3", i), value: costs.Abs().RoundBank(0).String()},
	}
	result := fmt.Sprintf("34%d4", i) // vinst
	if net.IsNegative() {
		result = fmt.Sprintf("34%d5", i) // förlust
	}
	g = append(g, field{code: result, value: net.Abs().RoundBank(0).String()})
	return g, nil
}

// Write emits the SRU file. Any underlying write error surfaces once, on
// the final flush.
func (f *SruFile) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, form := range f.Forms {
		form.write(bw, i+1)
	}
	fmt.Fprintln(bw, "#FIL_SLUT")
	return bw.Flush()
}

func (f *Form) write(w *bufio.Writer, seq int) {
	ts := now().UTC()

	fmt.Fprintf(w, "#BLANKETT %s\n", f.Type)
	fmt.Fprintf(w, "#IDENTITET %s %s %s\n", f.OrgNum, ts.Format("20060102"), ts.Format("150405"))
	if f.Name != "" {
		fmt.Fprintf(w, "#NAMN %s\n", f.Name)
	}
	fmt.Fprintf(w, "#UPPGIFT 7014 %d\n", seq)
	for _, g := range f.groups {
		for _, rec := range g {
			fmt.Fprintf(w, "#UPPGIFT %s %s\n", rec.code, rec.value)
		}
	}
	fmt.Fprintln(w, "#BLANKETTSLUT")
}
