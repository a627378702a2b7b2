package domain

import "math"

// Математические константы
const (
	Epsilon  = 1e-9
	Infinity = math.MaxFloat64
)

// Параметры дорожной сети
const (
	// DefaultCapacityVPH пропускная способность сегмента (машин/час),
	// если в данных она отсутствует или неположительна
	DefaultCapacityVPH = 1800.0

	// CriticalFlowThreshold порог потока, ниже которого риск затора критический
	CriticalFlowThreshold = 1000.0

	// DefaultClearanceHours время эвакуации при нулевой пропускной способности
	DefaultClearanceHours = 24.0
)

// Параметры выбора точек входа/выхода
const (
	// EndpointTrials количество попыток случайного выбора источника
	EndpointTrials = 10

	// MinReachableNodes минимальное число достижимых узлов для принятия источника
	MinReachableNodes = 50
)

// FloatEquals сравнивает два float64 с учётом Epsilon
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// FloatLess проверяет a < b с учётом Epsilon
func FloatLess(a, b float64) bool {
	return a < b-Epsilon
}

// FloatGreater проверяет a > b с учётом Epsilon
func FloatGreater(a, b float64) bool {
	return a > b+Epsilon
}

// IsZero проверяет, равно ли значение нулю
func IsZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// IsPositive проверяет, положительно ли значение
func IsPositive(v float64) bool {
	return v > Epsilon
}

// Min возвращает минимум двух float64
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max возвращает максимум двух float64
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Round2 округляет значение до двух знаков
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
