package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSampleTypes_EmptyEnablesEverything(t *testing.T) {
	types, err := resolveSampleTypes("  ")

	require.NoError(t, err)
	assert.Equal(t, allSampleTypes, types)
}

func TestResolveSampleTypes_AliasesExpandAndDeduplicate(t *testing.T) {
	types, err := resolveSampleTypes("cpu, mutex,CPU")

	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	}, types)
}

func TestResolveSampleTypes_UnknownAlias(t *testing.T) {
	_, err := resolveSampleTypes("cpu,heap")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "heap")
}

func TestPyroscopeAppName(t *testing.T) {
	name := pyroscopeAppName("", "mentorlink-api", "mentorlink", "production", "1.2.3", "pod-1")

	assert.Equal(t,
		"mentorlink-api{service_name=mentorlink-api,namespace=mentorlink,environment=production,service_version=1.2.3,instance=pod-1}",
		name)
}
