package shipment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createContainer(t *testing.T, barcode string) *shipment.Container {
	t.Helper()
	container, err := shipment.NewContainer(kernel.NewUUID(), barcode, "tomato", 12.5)
	require.NoError(t, err)
	return container
}

func createBuildingShipment(t *testing.T, barcodes ...string) *shipment.Shipment {
	t.Helper()
	containers := make([]*shipment.Container, len(barcodes))
	for i, barcode := range barcodes {
		containers[i] = createContainer(t, barcode)
	}
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), containers)
	require.NoError(t, err)
	return s
}

func createInTransitShipment(t *testing.T, barcodes ...string) *shipment.Shipment {
	t.Helper()
	s := createBuildingShipment(t, barcodes...)
	require.NoError(t, s.Dispatch())
	return s
}

func TestNewShipment(t *testing.T) {
	t.Run("should create building shipment", func(t *testing.T) {
		s := createBuildingShipment(t, "BC-1", "BC-2")

		assert.Equal(t, shipment.Building, s.Status())
		assert.Len(t, s.Containers(), 2)
		assert.Nil(t, s.ArrivalToken())
		require.NoError(t, s.Validate())
	})

	t.Run("should reject duplicate barcodes", func(t *testing.T) {
		containers := []*shipment.Container{
			createContainer(t, "BC-1"),
			createContainer(t, "BC-1"),
		}

		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), containers)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "BC-1")
	})

	t.Run("should reject empty container list", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestShipment_Dispatch(t *testing.T) {
	t.Run("should dispatch building shipment", func(t *testing.T) {
		s := createBuildingShipment(t, "BC-1")

		require.NoError(t, s.Dispatch())
		assert.Equal(t, shipment.InTransit, s.Status())
	})

	t.Run("should reject dispatching twice", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")

		require.ErrorIs(t, s.Dispatch(), shipment.ErrInvalidShipmentState)
	})
}

func TestShipment_RecordScan(t *testing.T) {
	now := time.Now()

	t.Run("should record first scan", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1", "BC-2")

		progress, err := s.RecordScan("BC-1", "driver-7", now)

		require.NoError(t, err)
		assert.Equal(t, shipment.ScanProgress{Total: 2, Scanned: 1}, progress)

		container, err := s.ContainerByBarcode("BC-1")
		require.NoError(t, err)
		assert.True(t, container.IsScanned())
		assert.Equal(t, "driver-7", *container.ScannedBy())
		assert.Equal(t, now, *container.ScannedAt())
	})

	t.Run("rescan is a no-op, not an error", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1", "BC-2")
		first, err := s.RecordScan("BC-1", "driver-7", now)
		require.NoError(t, err)

		later := now.Add(time.Minute)
		second, err := s.RecordScan("BC-1", "driver-8", later)

		require.NoError(t, err)
		assert.Equal(t, first, second)

		container, err := s.ContainerByBarcode("BC-1")
		require.NoError(t, err)
		assert.Equal(t, "driver-7", *container.ScannedBy())
		assert.Equal(t, now, *container.ScannedAt())
	})

	t.Run("unknown barcode is rejected without mutation", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")

		_, err := s.RecordScan("BC-404", "driver-7", now)

		require.ErrorIs(t, err, shipment.ErrContainerNotFound)
		assert.Equal(t, shipment.ScanProgress{Total: 1, Scanned: 0}, s.Progress())
	})

	t.Run("scanning a building shipment is rejected", func(t *testing.T) {
		s := createBuildingShipment(t, "BC-1")

		_, err := s.RecordScan("BC-1", "driver-7", now)

		require.ErrorIs(t, err, shipment.ErrInvalidShipmentState)
	})
}

func TestShipment_IsScanComplete(t *testing.T) {
	now := time.Now()
	s := createInTransitShipment(t, "BC-1", "BC-2", "BC-3", "BC-4")

	for _, barcode := range []string{"BC-1", "BC-2", "BC-3"} {
		_, err := s.RecordScan(barcode, "driver-7", now)
		require.NoError(t, err)
	}
	assert.False(t, s.IsScanComplete())

	_, err := s.RecordScan("BC-4", "driver-7", now)
	require.NoError(t, err)
	assert.True(t, s.IsScanComplete())

	// Completion is a pure query: the status is untouched.
	assert.Equal(t, shipment.InTransit, s.Status())
}

func TestShipment_MintArrivalToken(t *testing.T) {
	now := time.Now()

	t.Run("should mint for in-transit shipment", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")

		token, err := s.MintArrivalToken(now, 72*time.Hour)

		require.NoError(t, err)
		assert.NotEmpty(t, token.Value())
		assert.Equal(t, now, token.IssuedAt())
		assert.Equal(t, now.Add(72*time.Hour), token.ExpiresAt())
		assert.False(t, token.IsUsed())
		assert.Same(t, token, s.ArrivalToken())
	})

	t.Run("token values are unguessably distinct", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")

		first, err := s.MintArrivalToken(now, time.Hour)
		require.NoError(t, err)
		second, err := s.MintArrivalToken(now, time.Hour)
		require.NoError(t, err)

		assert.NotEqual(t, first.Value(), second.Value())
		// 32 bytes of entropy -> 43 chars of unpadded URL-safe base64.
		assert.Len(t, second.Value(), 43)
	})

	t.Run("should reject minting for building shipment", func(t *testing.T) {
		s := createBuildingShipment(t, "BC-1")

		_, err := s.MintArrivalToken(now, time.Hour)

		require.ErrorIs(t, err, shipment.ErrInvalidShipmentState)
	})
}

func TestShipment_ConsumeArrivalToken(t *testing.T) {
	now := time.Now()

	t.Run("confirm succeeds exactly once", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")
		token, err := s.MintArrivalToken(now, 72*time.Hour)
		require.NoError(t, err)

		confirmAt := now.Add(time.Minute)
		require.NoError(t, s.ConsumeArrivalToken(token.Value(), confirmAt))
		assert.Equal(t, shipment.Arrived, s.Status())
		require.NotNil(t, s.ArrivalToken().UsedAt())
		assert.Equal(t, confirmAt, *s.ArrivalToken().UsedAt())

		err = s.ConsumeArrivalToken(token.Value(), now.Add(2*time.Minute))
		require.ErrorIs(t, err, shipment.ErrTokenAlreadyUsed)
		assert.Equal(t, confirmAt, *s.ArrivalToken().UsedAt())
	})

	t.Run("unknown value reports TokenNotFound", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")
		_, err := s.MintArrivalToken(now, time.Hour)
		require.NoError(t, err)

		err = s.ConsumeArrivalToken("not-the-token", now)

		require.ErrorIs(t, err, shipment.ErrTokenNotFound)
		assert.Equal(t, shipment.InTransit, s.Status())
	})

	t.Run("no minted token reports TokenNotFound", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")

		err := s.ConsumeArrivalToken("anything", now)

		require.ErrorIs(t, err, shipment.ErrTokenNotFound)
	})

	t.Run("zero ttl token always expires", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")
		token, err := s.MintArrivalToken(now, 0)
		require.NoError(t, err)

		err = s.ConsumeArrivalToken(token.Value(), now)

		require.ErrorIs(t, err, shipment.ErrTokenExpired)
		assert.Equal(t, shipment.InTransit, s.Status())
	})

	t.Run("expired token reports TokenExpired", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")
		token, err := s.MintArrivalToken(now, time.Hour)
		require.NoError(t, err)

		err = s.ConsumeArrivalToken(token.Value(), now.Add(2*time.Hour))

		require.ErrorIs(t, err, shipment.ErrTokenExpired)
	})

	t.Run("re-mint invalidates the previous token", func(t *testing.T) {
		s := createInTransitShipment(t, "BC-1")
		old, err := s.MintArrivalToken(now, 72*time.Hour)
		require.NoError(t, err)
		replacement, err := s.MintArrivalToken(now, 72*time.Hour)
		require.NoError(t, err)

		err = s.ConsumeArrivalToken(old.Value(), now.Add(time.Minute))
		require.ErrorIs(t, err, shipment.ErrTokenNotFound)
		assert.Equal(t, shipment.InTransit, s.Status())

		require.NoError(t, s.ConsumeArrivalToken(replacement.Value(), now.Add(time.Minute)))
		assert.Equal(t, shipment.Arrived, s.Status())
	})
}

func TestRestoreContainer(t *testing.T) {
	t.Run("should restore scanned container", func(t *testing.T) {
		actor := "driver-7"
		at := time.Now()

		container, err := shipment.RestoreContainer(kernel.NewUUID(), "BC-1", "grape", 4, &actor, &at)

		require.NoError(t, err)
		assert.True(t, container.IsScanned())
	})

	t.Run("should reject half-set scan state", func(t *testing.T) {
		actor := "driver-7"

		container, err := shipment.RestoreContainer(kernel.NewUUID(), "BC-1", "grape", 4, &actor, nil)

		require.Error(t, err)
		assert.Nil(t, container)
	})
}
