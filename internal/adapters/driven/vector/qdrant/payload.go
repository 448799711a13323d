package qdrant

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// Payload keys shared by both collections.
const (
	payloadTitle        = "title"
	payloadLink         = "link"
	payloadInstructor   = "instructor"
	payloadLessonCount  = "lesson_count"
	payloadLessons      = "lessons_json"
	payloadCourseTitle  = "course_title"
	payloadLessonNumber = "lesson_number"
	payloadChunkIndex   = "chunk_index"
	payloadContent      = "content"
)

// pointNamespace seeds the deterministic point IDs. Fixed so that the
// same course always maps to the same point across runs.
var pointNamespace = uuid.MustParse("7f1ed62c-9d31-4b8a-8c0e-4a72d9f3b6e1")

// summaryID is the catalog point ID for a course title.
func summaryID(title string) *qdrantclient.PointId {
	id := uuid.NewSHA1(pointNamespace, []byte(title))
	return &qdrantclient.PointId{
		PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: id.String()},
	}
}

// chunkID is the content point ID for a chunk, derived from its course
// and running index.
func chunkID(courseTitle string, index int) *qdrantclient.PointId {
	id := uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%s#%d", courseTitle, index)))
	return &qdrantclient.PointId{
		PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: id.String()},
	}
}

func stringValue(s string) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: s}}
}

func intValue(n int64) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_IntegerValue{IntegerValue: n}}
}

// summaryPoint builds the catalog point for a course summary. The lesson
// list travels as a JSON payload field.
func summaryPoint(summary *domain.CourseSummary, vector []float32) (*qdrantclient.PointStruct, error) {
	lessons, err := json.Marshal(summary.Lessons)
	if err != nil {
		return nil, fmt.Errorf("encode lessons: %w", err)
	}

	return &qdrantclient.PointStruct{
		Id: summaryID(summary.Title),
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{Data: vector},
			},
		},
		Payload: map[string]*qdrantclient.Value{
			payloadTitle:       stringValue(summary.Title),
			payloadLink:        stringValue(summary.Link),
			payloadInstructor:  stringValue(summary.Instructor),
			payloadLessonCount: intValue(int64(summary.LessonCount)),
			payloadLessons:     stringValue(string(lessons)),
		},
	}, nil
}

// chunkPoint builds the content point for one chunk.
func chunkPoint(chunk domain.Chunk, vector []float32) *qdrantclient.PointStruct {
	payload := map[string]*qdrantclient.Value{
		payloadCourseTitle: stringValue(chunk.CourseTitle),
		payloadChunkIndex:  intValue(int64(chunk.Index)),
		payloadContent:     stringValue(chunk.Content),
	}
	if chunk.LessonNumber != nil {
		payload[payloadLessonNumber] = intValue(int64(*chunk.LessonNumber))
	}

	return &qdrantclient.PointStruct{
		Id: chunkID(chunk.CourseTitle, chunk.Index),
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{Data: vector},
			},
		},
		Payload: payload,
	}
}

// summaryFromPayload decodes a catalog payload.
func summaryFromPayload(payload map[string]*qdrantclient.Value) (*domain.CourseSummary, error) {
	summary := &domain.CourseSummary{
		Title:       payload[payloadTitle].GetStringValue(),
		Link:        payload[payloadLink].GetStringValue(),
		Instructor:  payload[payloadInstructor].GetStringValue(),
		LessonCount: int(payload[payloadLessonCount].GetIntegerValue()),
	}
	if raw := payload[payloadLessons].GetStringValue(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &summary.Lessons); err != nil {
			return nil, fmt.Errorf("decode lessons for %q: %w", summary.Title, err)
		}
	}
	return summary, nil
}

// scoredResult maps a content hit to a search result.
func scoredResult(hit *qdrantclient.ScoredPoint) domain.SearchResult {
	payload := hit.GetPayload()
	result := domain.SearchResult{
		Content:     payload[payloadContent].GetStringValue(),
		Score:       float64(hit.GetScore()),
		CourseTitle: payload[payloadCourseTitle].GetStringValue(),
	}
	if value, ok := payload[payloadLessonNumber]; ok {
		lesson := int(value.GetIntegerValue())
		result.LessonNumber = &lesson
	}
	return result
}

// matchKeyword filters on an exact string payload value.
func matchKeyword(key, value string) *qdrantclient.Condition {
	return &qdrantclient.Condition{
		ConditionOneOf: &qdrantclient.Condition_Field{
			Field: &qdrantclient.FieldCondition{
				Key: key,
				Match: &qdrantclient.Match{
					MatchValue: &qdrantclient.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}

// matchInteger filters on an exact integer payload value.
func matchInteger(key string, value int64) *qdrantclient.Condition {
	return &qdrantclient.Condition{
		ConditionOneOf: &qdrantclient.Condition_Field{
			Field: &qdrantclient.FieldCondition{
				Key: key,
				Match: &qdrantclient.Match{
					MatchValue: &qdrantclient.Match_Integer{Integer: value},
				},
			},
		},
	}
}

// includePayload selects specific payload fields.
func includePayload(fields ...string) *qdrantclient.WithPayloadSelector {
	return &qdrantclient.WithPayloadSelector{
		SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
			Include: &qdrantclient.PayloadIncludeSelector{Fields: fields},
		},
	}
}

// includeAllPayload selects every payload field.
func includeAllPayload() *qdrantclient.WithPayloadSelector {
	return &qdrantclient.WithPayloadSelector{
		SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
	}
}
