package models

import "sort"

// PopularityRecord is the per-movie view counter. Exactly one record exists per movie id.
type PopularityRecord struct {
	DocumentID string `json:"id" bson:"-"`
	MovieID    int    `json:"movie_id" bson:"movie_id"`
	Count      int    `json:"count" bson:"count"`
	PosterURL  string `json:"poster_url" bson:"poster_url"`
	MovieName  string `json:"movie_name" bson:"movie_name"`
}

type TrendingEntry struct {
	MovieID   int    `json:"movie_id"`
	Count     int    `json:"count"`
	PosterURL string `json:"poster_url"`
	MovieName string `json:"movie_name"`
}

func (r PopularityRecord) Trending() TrendingEntry {
	return TrendingEntry{
		MovieID:   r.MovieID,
		Count:     r.Count,
		PosterURL: r.PosterURL,
		MovieName: r.MovieName,
	}
}

// RankRecords orders records by count descending, ties by movie id ascending,
// and keeps at most limit of them.
func RankRecords(records []PopularityRecord, limit int) []PopularityRecord {
	if limit <= 0 {
		return []PopularityRecord{}
	}
	sorted := make([]PopularityRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].MovieID < sorted[j].MovieID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// PopularitySnapshot is the persisted form of the in-memory popularity store.
type PopularitySnapshot struct {
	Version int                `json:"version"`
	Records []PopularityRecord `json:"records"`
}
