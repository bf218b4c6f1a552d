package datasets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/techverse/internal/domain/catalog"
)

func TestParseBooks(t *testing.T) {
	in := "id,title,author,series\n1,Dune,Frank Herbert,Dune Chronicles\n2,\"Neuromancer, Revisited\",William Gibson,\n"
	books, err := ParseBooks(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []catalog.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Series: "Dune Chronicles"},
		{ID: 2, Title: "Neuromancer, Revisited", Author: "William Gibson", Series: ""},
	}, books)
}

func TestParseTechsColumnOrderAndBOM(t *testing.T) {
	in := "\ufeffname,id,description,category,subcategory\nStillsuit,10,Recycles water,Survival,Wearable\n"
	techs, err := ParseTechs(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, catalog.Tech{ID: 10, Name: "Stillsuit", Category: "Survival", Subcategory: "Wearable", Description: "Recycles water"}, techs[0])
}

func TestParseLinksToleratesDuplicates(t *testing.T) {
	links, err := ParseLinks(strings.NewReader("book_id,tech_id\n1,10\n1,10\n"))
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty file", in: "", want: "missing header row"},
		{name: "missing column", in: "book_id\n1\n", want: `missing column "tech_id"`},
		{name: "bad integer", in: "book_id,tech_id\n1,x\n", want: `line 2: column "tech_id"`},
		{name: "ragged row", in: "book_id,tech_id\n1\n", want: "wrong number of fields"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLinks(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseHeaderOnlyYieldsEmptySlice(t *testing.T) {
	books, err := ParseBooks(strings.NewReader("id,title,author,series\n"))
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}
