package task

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// statusOrder adalah urutan kolom board. Transisi hanya boleh satu langkah
// ke kiri atau ke kanan; guard ini berlaku di service supaya PATCH langsung
// tidak bisa melompati kolom.
var statusOrder = []string{StatusTodo, StatusInProgress, StatusDone}

func statusIndex(status string) int {
	for i, s := range statusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

func ValidStatus(status string) bool {
	return statusIndex(status) >= 0
}

func adjacentTransition(from, to string) bool {
	fi, ti := statusIndex(from), statusIndex(to)
	if fi < 0 || ti < 0 {
		return false
	}
	diff := fi - ti
	return diff == 1 || diff == -1
}

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
