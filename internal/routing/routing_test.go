package routing_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/routing"
)

func newTestGuard() *routing.Guard {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return routing.NewGuard(log)
}

func TestGuard_Authorize(t *testing.T) {
	tests := []struct {
		name        string
		useCase     routing.UseCase
		engine      routing.Engine
		wantErr     bool
		wantWarning bool
	}{
		{name: "tryon with fast identity engine", useCase: routing.UseCaseTryOn, engine: routing.EngineIdentityFast},
		{name: "tryon with locked identity engine", useCase: routing.UseCaseTryOn, engine: routing.EngineIdentityLocked},
		{name: "tryon with creative engine is forbidden", useCase: routing.UseCaseTryOn, engine: routing.EngineCreativeFree, wantErr: true},
		{name: "ugc with creative engine", useCase: routing.UseCaseUGC, engine: routing.EngineCreativeFree},
		{name: "ugc with identity engine warns", useCase: routing.UseCaseUGC, engine: routing.EngineIdentityFast, wantWarning: true},
		{name: "campaign with creative engine", useCase: routing.UseCaseCampaign, engine: routing.EngineCreativeFree},
		{name: "campaign with locked engine warns", useCase: routing.UseCaseCampaign, engine: routing.EngineIdentityLocked, wantWarning: true},
		{name: "unknown engine", useCase: routing.UseCaseTryOn, engine: routing.Engine("sketchy"), wantErr: true},
		{name: "unknown use case", useCase: routing.UseCase("video"), engine: routing.EngineIdentityFast, wantErr: true},
	}

	guard := newTestGuard()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := guard.Authorize(tt.useCase, tt.engine)
			if tt.wantErr {
				assert.ErrorIs(t, err, routing.ErrForbiddenRoute)
				assert.Nil(t, decision)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, decision)
			assert.Equal(t, tt.engine, decision.Engine)
			if tt.wantWarning {
				assert.NotEmpty(t, decision.Warning)
			} else {
				assert.Empty(t, decision.Warning)
			}
		})
	}
}

func TestEngineSpec_FixedTemperatures(t *testing.T) {
	fast, ok := routing.EngineSpec(routing.EngineIdentityFast)
	require.True(t, ok)
	assert.Equal(t, config.TemperatureIdentityFast, fast.Temperature)
	assert.True(t, fast.IdentityCritical)
	assert.True(t, fast.PixelCorrection)

	locked, ok := routing.EngineSpec(routing.EngineIdentityLocked)
	require.True(t, ok)
	assert.Equal(t, config.TemperatureIdentityLocked, locked.Temperature)
	assert.True(t, locked.PixelCorrection)
	// The locked engine runs colder than the fast one.
	assert.Less(t, locked.Temperature, fast.Temperature)

	creative, ok := routing.EngineSpec(routing.EngineCreativeFree)
	require.True(t, ok)
	assert.Equal(t, config.TemperatureCreativeFree, creative.Temperature)
	assert.False(t, creative.IdentityCritical)
	assert.False(t, creative.PixelCorrection)
}

func TestEngineSpec_UnknownEngine(t *testing.T) {
	_, ok := routing.EngineSpec(routing.Engine("nope"))
	assert.False(t, ok)
}
