package get_provider_reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("prov-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(defaultLimit), req.Limit)
	assert.Equal(t, uint64(0), req.Offset)

	req, err = ToServiceRequest("prov-1", "5", "10")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), req.Limit)
	assert.Equal(t, uint64(10), req.Offset)

	for _, bad := range [][2]string{{"0", ""}, {"101", ""}, {"-1", ""}, {"", "x"}} {
		_, err := ToServiceRequest("prov-1", bad[0], bad[1])
		assert.Error(t, err, "limit=%q offset=%q", bad[0], bad[1])
	}
}
