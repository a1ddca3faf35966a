package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	require.Equal(t, "4.87", Score(4.87))
	require.Equal(t, "5.00", Score(5))
	require.Equal(t, "0.00", Score(0))
	require.Equal(t, "3.46", Score(3.456))
}

func TestDayMonthYear(t *testing.T) {
	d := time.Date(2024, time.January, 7, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "07/01/2024", DayMonthYear(d))
}

func TestUpper(t *testing.T) {
	require.Equal(t, "SPRING 2025", Upper("Spring 2025"))
	require.Equal(t, "OUTONO É AQUI", Upper("outono é aqui"))
}
