// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/facultyfinder/core"
)

// recordFormatVersion prefixes every encoded FacultyRecord.
const recordFormatVersion uint64 = 1

// IDMUS serializes core.ID as an unsigned varint.
var IDMUS = idSer{}

// FacultyRecordMUS serializes core.FacultyRecord.
var FacultyRecordMUS = facultyRecordSer{}

var (
	_ mus.Serializer[core.ID]            = IDMUS
	_ mus.Serializer[core.FacultyRecord] = FacultyRecordMUS
)

type idSer struct{}

func (idSer) Marshal(id core.ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (id core.ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(id core.ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// stringsSer encodes a string slice as a varint length followed by elements.
// A nil slice and an empty slice both decode as nil.
type stringsSer struct{}

var stringsMUS = stringsSer{}

func (stringsSer) Marshal(v []string, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringsSer) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length > uint64(len(bs)-n) {
		return nil, n, fmt.Errorf("%w: list length %d exceeds input", ErrSerializationFailed, length)
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := range v {
		var m int
		v[i], m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (stringsSer) Size(v []string) (size int) {
	size = varint.Uint64.Size(uint64(len(v)))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

func (stringsSer) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return n, err
	}
	for range length {
		m, err := ord.String.Skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type facultyRecordSer struct{}

// recordStrings returns pointers to the record's string fields in wire order.
func recordStrings(r *core.FacultyRecord) []*string {
	return []*string{
		&r.Name, &r.FacultyType, &r.Education, &r.Bio,
		&r.Email, &r.Phone, &r.Address, &r.CombinedText,
	}
}

func (facultyRecordSer) Marshal(r core.FacultyRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(recordFormatVersion, bs)
	n += IDMUS.Marshal(r.Id, bs[n:])
	for _, s := range recordStrings(&r) {
		n += ord.String.Marshal(*s, bs[n:])
	}
	n += stringsMUS.Marshal(r.SpecializationList, bs[n:])
	n += stringsMUS.Marshal(r.ResearchTags, bs[n:])
	return n
}

func (facultyRecordSer) Unmarshal(bs []byte) (r core.FacultyRecord, n int, err error) {
	version, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	if version != recordFormatVersion {
		return r, n, fmt.Errorf("%w: unknown record format version %d", ErrSerializationFailed, version)
	}

	var m int
	r.Id, m, err = IDMUS.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return r, n, err
	}
	for _, s := range recordStrings(&r) {
		*s, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return r, n, err
		}
	}
	r.SpecializationList, m, err = stringsMUS.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return r, n, err
	}
	r.ResearchTags, m, err = stringsMUS.Unmarshal(bs[n:])
	n += m
	return r, n, err
}

func (facultyRecordSer) Size(r core.FacultyRecord) (size int) {
	size = varint.Uint64.Size(recordFormatVersion)
	size += IDMUS.Size(r.Id)
	for _, s := range recordStrings(&r) {
		size += ord.String.Size(*s)
	}
	size += stringsMUS.Size(r.SpecializationList)
	return size + stringsMUS.Size(r.ResearchTags)
}

func (facultyRecordSer) Skip(bs []byte) (n int, err error) {
	_, n, err = FacultyRecordMUS.Unmarshal(bs)
	return n, err
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalFacultyRecord serializes a FacultyRecord to bytes.
func MarshalFacultyRecord(record *core.FacultyRecord) []byte {
	buf := make([]byte, FacultyRecordMUS.Size(*record))
	FacultyRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalFacultyRecord deserializes a FacultyRecord from bytes.
func UnmarshalFacultyRecord(data []byte) (*core.FacultyRecord, error) {
	record, _, err := FacultyRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
