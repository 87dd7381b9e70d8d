package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCompletionRate_Formula(t *testing.T) {
	tests := []struct {
		name    string
		actual  int
		planned *int
		want    int
	}{
		{"nil planned yields zero", 3, nil, 0},
		{"zero planned yields zero", 3, intPtr(0), 0},
		{"negative planned yields zero", 3, intPtr(-1), 0},
		{"exact half", 5, intPtr(10), 50},
		{"rounds up", 1, intPtr(3), 33},
		{"rounds to nearest", 2, intPtr(3), 67},
		{"complete", 10, intPtr(10), 100},
		{"overshoot clamps to 100", 15, intPtr(10), 100},
		{"negative actual clamps to 0", -5, intPtr(10), 0},
		{"one of seven", 1, intPtr(7), 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionRate(tt.actual, tt.planned))
		})
	}
}

func TestStatusForRate_Boundaries(t *testing.T) {
	assert.Equal(t, TaskTodo, StatusForRate(0))
	assert.Equal(t, TaskInProgress, StatusForRate(1))
	assert.Equal(t, TaskInProgress, StatusForRate(50))
	assert.Equal(t, TaskInProgress, StatusForRate(99))
	assert.Equal(t, TaskDone, StatusForRate(100))
}

func TestStatusForRate_NonTerminal(t *testing.T) {
	// A task that reached done drops back when progress falls below 100.
	rate := CompletionRate(10, intPtr(10))
	assert.Equal(t, TaskDone, StatusForRate(rate))

	rate = CompletionRate(9, intPtr(10))
	assert.Equal(t, TaskInProgress, StatusForRate(rate))

	rate = CompletionRate(0, intPtr(10))
	assert.Equal(t, TaskTodo, StatusForRate(rate))
}

func TestTaskCheckCounts(t *testing.T) {
	ok := &Task{EquipmentCount: intPtr(5), ActualEquipmentCount: 5}
	assert.NoError(t, ok.CheckCounts())

	unconstrained := &Task{EquipmentCount: nil, ActualEquipmentCount: 99}
	assert.NoError(t, unconstrained.CheckCounts())

	over := &Task{EquipmentCount: intPtr(5), ActualEquipmentCount: 6}
	err := over.CheckCounts()
	var consistency *ConsistencyError
	assert.ErrorAs(t, err, &consistency)
	assert.Equal(t, 6, consistency.Actual)
	assert.Equal(t, 5, consistency.Planned)

	negative := &Task{ActualEquipmentCount: -1}
	var validation *ValidationError
	assert.ErrorAs(t, negative.CheckCounts(), &validation)
}

func TestSubTaskCheckCounts(t *testing.T) {
	ok := &SubTask{EquipmentCount: intPtr(3), ActualEquipmentCount: intPtr(3)}
	assert.NoError(t, ok.CheckCounts())

	unset := &SubTask{}
	assert.NoError(t, unset.CheckCounts())

	over := &SubTask{EquipmentCount: intPtr(3), ActualEquipmentCount: intPtr(4)}
	var consistency *ConsistencyError
	assert.ErrorAs(t, over.CheckCounts(), &consistency)

	negativeActual := &SubTask{ActualEquipmentCount: intPtr(-1)}
	var validation *ValidationError
	assert.ErrorAs(t, negativeActual.CheckCounts(), &validation)

	negativePlanned := &SubTask{EquipmentCount: intPtr(-2)}
	assert.ErrorAs(t, negativePlanned.CheckCounts(), &validation)
}

func TestDefaultSplitName(t *testing.T) {
	assert.Equal(t, "基礎開挖 - 子任務", DefaultSplitName("基礎開挖"))
	assert.Equal(t, "Excavation - 子任務", DefaultSplitName("Excavation"))
}
