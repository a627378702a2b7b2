package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// normalizeKeyPart приводит часть ключа к каноническому виду:
// нижний регистр, пробелы заменяются подчёркиванием
func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// BuildSimulationKey строит ключ кэша для результата симуляции
func BuildSimulationKey(scenario, region string) string {
	return fmt.Sprintf("simulate:%s:%s", normalizeKeyPart(scenario), normalizeKeyPart(region))
}

// BuildSegmentsKey строит ключ кэша для выгрузки дорожных сегментов
func BuildSegmentsKey(region string) string {
	if region == "" {
		return "segments:all"
	}
	return fmt.Sprintf("segments:%s", normalizeKeyPart(region))
}

// BuildMetroAreasKey строит ключ кэша для списка агломераций
func BuildMetroAreasKey() string {
	return "msas:all"
}

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash короткий хеш (16 символов)
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
