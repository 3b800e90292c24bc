package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes an ID in MUS format.
var IDMUS = idMUS{}

// ItemMUS serializes an Item in MUS format.
// Fields are written in declaration order; timestamps as unix microseconds.
var ItemMUS = itemMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// stringsMUS encodes a string slice as a length followed by its elements.
type stringsMUS struct{}

var stringSliceMUS = stringsMUS{}

func (s stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, str := range v {
		n += ord.String.Marshal(str, bs[n:])
	}
	return
}

func (s stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 || length > len(bs)-n {
		return nil, n, ErrInvalidLength
	}
	v = make([]string, length)
	var n1 int
	for i := range v {
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s stringsMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, str := range v {
		size += ord.String.Size(str)
	}
	return
}

func (s stringsMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 || length > len(bs)-n {
		return n, ErrInvalidLength
	}
	var n1 int
	for i := 0; i < length; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type itemMUS struct{}

func (s itemMUS) Marshal(v Item, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += stringSliceMUS.Marshal(v.Genres, bs[n:])
	n += stringSliceMUS.Marshal(v.Themes, bs[n:])
	n += ord.String.Marshal(v.ImageURL, bs[n:])
	n += raw.Float64.Marshal(v.Score, bs[n:])
	n += varint.Int.Marshal(v.Popularity, bs[n:])
	n += varint.Int.Marshal(v.Favorites, bs[n:])
	n += ord.String.Marshal(v.Year, bs[n:])
	n += stringSliceMUS.Marshal(v.Authors, bs[n:])
	n += varint.Int64.Marshal(unixMicro(v.InsertedAt), bs[n:])
	n += varint.Int64.Marshal(unixMicro(v.UpdatedAt), bs[n:])
	return
}

func (s itemMUS) Unmarshal(bs []byte) (v Item, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Genres, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Themes, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImageURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Score, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Popularity, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Favorites, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Year, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Authors, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = fromUnixMicro(micros)
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = fromUnixMicro(micros)
	return
}

func (s itemMUS) Size(v Item) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += stringSliceMUS.Size(v.Genres)
	size += stringSliceMUS.Size(v.Themes)
	size += ord.String.Size(v.ImageURL)
	size += raw.Float64.Size(v.Score)
	size += varint.Int.Size(v.Popularity)
	size += varint.Int.Size(v.Favorites)
	size += ord.String.Size(v.Year)
	size += stringSliceMUS.Size(v.Authors)
	size += varint.Int64.Size(unixMicro(v.InsertedAt))
	size += varint.Int64.Size(unixMicro(v.UpdatedAt))
	return
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func fromUnixMicro(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
