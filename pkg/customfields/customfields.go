// Package customfields etkinlik türüne özgü "custom fields" JSON blob'unu
// uygulama sınırında doğrular. Depolama sınırında blob opak kalır (jsonb
// kolon); burada her etkinlik türü için ayrımlı (tagged-variant) bir şema
// tanımlanır ki veri uygulama boyunca tipsiz taşınmasın.
package customfields

import (
	"encoding/json"
	"fmt"
)

// Kind bir alanın beklenen JSON tipidir.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Schema tek bir etkinlik türünün alan tanımlarıdır.
// Open true ise şemada olmayan anahtarlara da izin verilir ("other" türü).
type Schema struct {
	Fields map[string]Kind
	Open   bool
}

// schemas etkinlik türü adı -> şema. Süreç ömrü boyunca sabittir.
var schemas = map[string]Schema{
	"wedding": {Fields: map[string]Kind{
		"brideName":    KindString,
		"groomName":    KindString,
		"ceremonyTime": KindString,
		"venueAddress": KindString,
		"dressCode":    KindString,
	}},
	"birthday": {Fields: map[string]Kind{
		"celebrantName": KindString,
		"age":           KindNumber,
		"partyTheme":    KindString,
	}},
	"engagement": {Fields: map[string]Kind{
		"partnerOneName": KindString,
		"partnerTwoName": KindString,
	}},
	"graduation": {Fields: map[string]Kind{
		"graduateName": KindString,
		"school":       KindString,
		"degree":       KindString,
	}},
	"corporate": {Fields: map[string]Kind{
		"companyName": KindString,
		"agenda":      KindString,
		"isFormal":    KindBool,
	}},
	"other": {Open: true},
}

// Validate ham JSON blob'u verilen etkinlik türünün şemasına göre doğrular.
// Boş blob geçerlidir. Hatalar kullanıcıya gösterilebilir metinlerdir.
func Validate(eventType string, raw string) error {
	if raw == "" {
		return nil
	}

	schema, ok := schemas[eventType]
	if !ok {
		return fmt.Errorf("bilinmeyen etkinlik türü: %s", eventType)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("özel alanlar geçerli bir JSON nesnesi değil: %v", err)
	}

	for key, value := range fields {
		kind, known := schema.Fields[key]
		if !known {
			if schema.Open {
				continue
			}
			return fmt.Errorf("'%s' etkinlik türü için tanımsız özel alan: %s", eventType, key)
		}
		if err := checkKind(key, kind, value); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(key string, kind Kind, value json.RawMessage) error {
	switch kind {
	case KindString:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return fmt.Errorf("özel alan '%s' metin olmalı", key)
		}
	case KindNumber:
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return fmt.Errorf("özel alan '%s' sayı olmalı", key)
		}
	case KindBool:
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return fmt.Errorf("özel alan '%s' true/false olmalı", key)
		}
	}
	return nil
}
