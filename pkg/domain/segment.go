package domain

import "strings"

// Coordinate точка геометрии сегмента: [долгота, широта]
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RoadSegment дорожный сегмент из БД.
// Source/Target могут отсутствовать в сырых данных — такие сегменты
// не попадают в граф.
type RoadSegment struct {
	ID           int64
	Source       *int64
	Target       *int64
	CapacityVPH  float64
	CostTime     float64
	RoadName     string
	Lanes        int32
	SpeedLimit   float64
	IsInterstate bool
	Geometry     []Coordinate
}

// HasEndpoints проверяет, что у сегмента заданы оба конца
func (s *RoadSegment) HasEndpoints() bool {
	return s.Source != nil && s.Target != nil
}

// EffectiveCapacity возвращает пропускную способность с учётом дефолта
func (s *RoadSegment) EffectiveCapacity() float64 {
	if s.CapacityVPH > Epsilon {
		return s.CapacityVPH
	}
	return DefaultCapacityVPH
}

// IsMajorHighway проверяет, относится ли сегмент к магистралям,
// подлежащим реверсу при контрафлоу
func (s *RoadSegment) IsMajorHighway() bool {
	return strings.Contains(strings.ToUpper(s.RoadName), "MAJOR HWY")
}

// Heading возвращает вектор направления сегмента (dx, dy) по первой
// и последней точкам геометрии. Для вырожденной геометрии (0, 0).
func (s *RoadSegment) Heading() (dx, dy float64) {
	if len(s.Geometry) < 2 {
		return 0, 0
	}
	first := s.Geometry[0]
	last := s.Geometry[len(s.Geometry)-1]
	return last.Lon - first.Lon, last.Lat - first.Lat
}

// MetroArea агломерация (MSA), к которой привязаны сегменты
type MetroArea struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	MPOCode string `json:"mpo_code"`
	State   string `json:"state"`
}

// Scenario режим симуляции
type Scenario string

const (
	ScenarioBaseline   Scenario = "baseline"
	ScenarioContraflow Scenario = "contraflow"
)

// ParseScenario разбирает имя сценария; нераспознанные значения
// трактуются как baseline
func ParseScenario(s string) Scenario {
	if strings.EqualFold(strings.TrimSpace(s), string(ScenarioContraflow)) {
		return ScenarioContraflow
	}
	return ScenarioBaseline
}

// String возвращает строковое представление сценария
func (s Scenario) String() string {
	return string(s)
}
