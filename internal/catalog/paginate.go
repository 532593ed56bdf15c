package catalog

import "strconv"

// Page is one window of the filtered list.
type Page struct {
	Index int
	Size  int
	Total int // total pages
	Count int // filtered entries across all pages
	Items []Entry
}

// TotalPages is ceil(count/size).
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate slices list[(index-1)*size : index*size]. An index outside the
// valid range yields an empty page rather than an error.
func Paginate(list []Entry, index, size int) Page {
	p := Page{
		Index: index,
		Size:  size,
		Total: TotalPages(len(list), size),
		Count: len(list),
	}
	if index < 1 || size <= 0 {
		return p
	}
	start := (index - 1) * size
	if start >= len(list) {
		return p
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	p.Items = list[start:end:end]
	return p
}

// ShowEmptyState distinguishes "searched, found nothing" from a landing view
// that has not been searched yet.
func ShowEmptyState(count int, landing bool, q Query) bool {
	if count > 0 {
		return false
	}
	return !landing || q.Active()
}

type ControlKind int

const (
	ControlPrev ControlKind = iota
	ControlPage
	ControlNext
)

// Control is one pagination button.
type Control struct {
	Kind     ControlKind
	Label    string
	Target   int
	Current  bool
	Disabled bool
}

// Enabled reports whether activating the control navigates anywhere.
func (c Control) Enabled() bool { return !c.Current && !c.Disabled }

// Layout builds the pager: prev, up to three page numbers around current,
// next. Nothing is shown for a single page.
func Layout(current, total int) []Control {
	if total <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := max(1, current-1)
	end := min(total, current+1)
	if current == 1 {
		end = min(3, total)
	}
	if current == total {
		start = max(1, total-2)
	}

	controls := make([]Control, 0, end-start+3)
	controls = append(controls, Control{
		Kind:     ControlPrev,
		Label:    "Prev",
		Target:   current - 1,
		Disabled: current == 1,
	})
	for i := start; i <= end; i++ {
		controls = append(controls, Control{
			Kind:    ControlPage,
			Label:   strconv.Itoa(i),
			Target:  i,
			Current: i == current,
		})
	}
	controls = append(controls, Control{
		Kind:     ControlNext,
		Label:    "Next",
		Target:   current + 1,
		Disabled: current == total,
	})
	return controls
}
