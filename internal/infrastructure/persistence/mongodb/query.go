package mongodb

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sensordash/backend/internal/domain/repositories"
)

// readingRangeFilter monta o filtro de intervalo sobre created_at.
// Só os limites fornecidos entram no filtro; sem limites o filtro é vazio.
func readingRangeFilter(filter repositories.ReadingFilter) bson.M {
	query := bson.M{}

	if filter.StartDate != nil || filter.EndDate != nil {
		dateFilter := bson.M{}
		if filter.StartDate != nil {
			dateFilter["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateFilter["$lte"] = *filter.EndDate
		}
		query["created_at"] = dateFilter
	}

	return query
}

// fieldPresentFilter seleciona documentos onde cada campo existe e não é nulo
func fieldPresentFilter(fields ...string) bson.M {
	query := bson.M{}
	for _, field := range fields {
		query[field] = bson.M{"$exists": true, "$ne": nil}
	}
	return query
}

// fieldStatsPipeline agrega min/max/avg/count de um campo numérico sobre
// a coleção inteira, sem janela de tempo
func fieldStatsPipeline(field string) []bson.M {
	return []bson.M{
		{"$match": fieldPresentFilter(field)},
		{"$group": bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$" + field},
			"min":   bson.M{"$min": "$" + field},
			"max":   bson.M{"$max": "$" + field},
			"count": bson.M{"$sum": 1},
		}},
	}
}
