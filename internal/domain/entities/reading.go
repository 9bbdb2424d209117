package entities

import "time"

// SensorReading é um registro da coleção de sensores.
// field1 é umidade, field2 é temperatura; ambos podem estar ausentes
// porque o ingestor externo grava leituras parciais.
type SensorReading struct {
	Field1    *float64
	Field2    *float64
	CreatedAt time.Time
}

// IsComplete indica se a leitura possui os dois campos numéricos
func (r *SensorReading) IsComplete() bool {
	return r.Field1 != nil && r.Field2 != nil
}

// FieldStats é o resultado da agregação min/max/avg/count de um campo
type FieldStats struct {
	Avg   float64
	Min   float64
	Max   float64
	Count int64
}

// CollectionStats agrupa os contadores estruturais da coleção
type CollectionStats struct {
	Total      int64
	WithField1 int64
	WithField2 int64
	WithBoth   int64
}
