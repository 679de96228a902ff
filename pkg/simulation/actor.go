package simulation

import (
	"fmt"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// MeadowActor hosts a Driver inside the actor system. The host sends one
// *timestamppb.Timestamp per frame and *structpb.Struct messages to tune the
// behavior; snapshots come back on the channel given at construction.
type MeadowActor struct {
	cfg       *Config
	snapshots chan<- *Snapshot
	opts      []Option

	driver   *Driver
	renderer *ChannelRenderer
}

var _ actor.Actor = (*MeadowActor)(nil)

func NewMeadowActor(cfg *Config, snapshots chan<- *Snapshot, opts ...Option) *MeadowActor {
	return &MeadowActor{
		cfg:       cfg,
		snapshots: snapshots,
		opts:      opts,
	}
}

// ============================================================================
// Actor Lifecycle Hooks
// ============================================================================

func (a *MeadowActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	meadow, err := NewMeadow(a.cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", ctx.ActorName(), err)
	}
	a.renderer = NewChannelRenderer(a.snapshots)
	opts := append([]Option{WithLogger(logger)}, a.opts...)
	a.driver = NewDriver(meadow, a.renderer, opts...)
	return nil
}

func (a *MeadowActor) PostStop(ctx *actor.Context) error {
	if a.driver == nil {
		return nil
	}
	ctx.ActorSystem().Logger().Infof("%s stopped, %d snapshots dropped by a busy UI",
		ctx.ActorName(), a.renderer.Dropped())
	return a.driver.Close()
}

// ============================================================================
// Message Routing
// ============================================================================

func (a *MeadowActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("%s started", ctx.Self().Name())

	// One frame, stamped by the host
	case *timestamppb.Timestamp:
		if _, err := a.driver.FrameAt(msg.AsTime()); err != nil {
			ctx.Logger().Warnf("frame: %v", err)
		}

	// Runtime tuning from the UI sliders
	case *structpb.Struct:
		values, err := tuningValues(msg)
		if err == nil {
			err = a.driver.Tune(values)
		}
		if err != nil {
			ctx.Logger().Warnf("tune rejected: %v", err)
		}

	default:
		ctx.Unhandled()
	}
}

// TuningMessage builds the message MeadowActor expects for Meadow.Tune.
func TuningMessage(values map[string]float64) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(values))
	for k, v := range values {
		fields[k] = structpb.NewNumberValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

func tuningValues(msg *structpb.Struct) (map[string]float64, error) {
	values := make(map[string]float64, len(msg.GetFields()))
	for name, v := range msg.GetFields() {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a number", ErrInvalidConfig, name)
		}
		values[name] = n.NumberValue
	}
	return values, nil
}
