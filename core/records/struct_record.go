/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Gridview Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package records

import (
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StructRecord is a Record carried as a protobuf Struct payload. Hosts that
// hand the grid loosely typed documents (the JSON datasource, for one) use
// this form so the selection output can be marshaled through protojson
// without an intermediate copy.
type StructRecord struct {
	id     string
	fields *structpb.Struct
}

// NewStructRecord builds a StructRecord from a generic field map.
func NewStructRecord(id string, fields map[string]interface{}) (*StructRecord, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return &StructRecord{id: id, fields: s}, nil
}

// WrapStruct wraps an existing Struct payload without copying it.
func WrapStruct(id string, fields *structpb.Struct) *StructRecord {
	return &StructRecord{id: id, fields: fields}
}

func (r *StructRecord) RecordID() string {
	return r.id
}

// Proto returns the underlying Struct payload.
func (r *StructRecord) Proto() *structpb.Struct {
	return r.fields
}

func (r *StructRecord) GetFormattedValue(columnName string) string {
	if r.fields == nil {
		return ""
	}
	v, ok := r.fields.GetFields()[columnName]
	if !ok {
		return ""
	}
	return formatValue(v)
}

// formatValue renders a Struct value the way a cell displays it. Scalars
// format directly; nested lists and structs fall back to their JSON form.
func formatValue(v *structpb.Value) string {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return ""
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue)
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
	default:
		return protojson.Format(v)
	}
}

// MarshalJSON emits the Struct fields plus a recordId key via protojson.
func (r *StructRecord) MarshalJSON() ([]byte, error) {
	fields := map[string]*structpb.Value{}
	for k, v := range r.fields.GetFields() {
		fields[k] = v
	}
	fields["recordId"] = structpb.NewStringValue(r.id)
	return protojson.Marshal(&structpb.Struct{Fields: fields})
}
