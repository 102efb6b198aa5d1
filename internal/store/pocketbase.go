package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

const maxFetchLimit = 10000

// PBStore implements Store on top of PocketBase collections. Kind names map
// 1:1 to collection names; the fields map tells the store which data fields
// each collection carries.
type PBStore struct {
	app    core.App
	fields map[string][]string
}

func NewPocketBase(app core.App, fields map[string][]string) *PBStore {
	return &PBStore{app: app, fields: fields}
}

func (s *PBStore) FindByKey(kind, field string, value interface{}) (Record, error) {
	rec, err := s.app.FindFirstRecordByFilter(kind, field+" = {:value}", map[string]interface{}{"value": value})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s.fromPB(kind, rec), nil
}

func (s *PBStore) FindAll(kind string, filter map[string]interface{}) ([]Record, error) {
	expr := "id != ''"
	params := map[string]interface{}{}
	i := 0
	for field, value := range filter {
		param := "p" + strconv.Itoa(i)
		expr += " && " + field + " = {:" + param + "}"
		params[param] = value
		i++
	}

	recs, err := s.app.FindRecordsByFilter(kind, expr, "+created", maxFetchLimit, 0, params)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.fromPB(kind, rec))
	}
	return out, nil
}

func (s *PBStore) Create(kind string, rec Record) (Record, error) {
	col, err := s.app.FindCollectionByNameOrId(kind)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", kind, err)
	}
	pbRec := core.NewRecord(col)
	s.apply(kind, rec, pbRec)
	if err := s.app.Save(pbRec); err != nil {
		return nil, err
	}
	return s.fromPB(kind, pbRec), nil
}

func (s *PBStore) Save(kind string, rec Record) (Record, error) {
	id := rec.ID()
	if id == "" {
		return s.Create(kind, rec)
	}
	pbRec, err := s.app.FindRecordById(kind, id)
	if err != nil {
		return nil, fmt.Errorf("record %s/%s: %w", kind, id, err)
	}
	s.apply(kind, rec, pbRec)
	if err := s.app.Save(pbRec); err != nil {
		return nil, err
	}
	return s.fromPB(kind, pbRec), nil
}

func (s *PBStore) Delete(kind, id string) error {
	pbRec, err := s.app.FindRecordById(kind, id)
	if err != nil {
		return fmt.Errorf("record %s/%s: %w", kind, id, err)
	}
	return s.app.Delete(pbRec)
}

func (s *PBStore) apply(kind string, rec Record, pbRec *core.Record) {
	for _, field := range s.fields[kind] {
		if v, ok := rec[field]; ok {
			pbRec.Set(field, v)
		}
	}
}

func (s *PBStore) fromPB(kind string, pbRec *core.Record) Record {
	out := Record{"id": pbRec.Id}
	for _, field := range s.fields[kind] {
		out[field] = pbRec.Get(field)
	}
	return out
}
