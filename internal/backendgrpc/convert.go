package backendgrpc

import (
	"pkt.systems/termtab/internal/backendpb"
	"pkt.systems/termtab/schema"
)

func toPBLaunchConfig(cfg schema.LaunchConfig) *backendpb.LaunchConfig {
	pb := &backendpb.LaunchConfig{
		Shell:      cfg.Shell,
		Args:       cfg.Args,
		Env:        cfg.Env,
		WorkingDir: cfg.WorkingDir,
		Title:      cfg.Title,
		Kind:       string(cfg.Kind),
	}
	if cfg.Attach != nil {
		pb.Attach = &backendpb.BackendDescriptor{
			Owner:      string(cfg.Attach.Owner),
			SessionId:  int64(cfg.Attach.SessionID),
			SocketPath: cfg.Attach.SocketPath,
			Title:      cfg.Attach.Title,
		}
	}
	return pb
}

func fromPBLaunchConfig(pb *backendpb.LaunchConfig) schema.LaunchConfig {
	if pb == nil {
		return schema.LaunchConfig{}
	}
	cfg := schema.LaunchConfig{
		Shell:      pb.GetShell(),
		Args:       pb.GetArgs(),
		Env:        pb.GetEnv(),
		WorkingDir: pb.GetWorkingDir(),
		Title:      pb.GetTitle(),
		Kind:       schema.TargetKind(pb.GetKind()),
	}
	if attach := pb.GetAttach(); attach != nil {
		cfg.Attach = &schema.BackendDescriptor{
			Owner:      schema.WindowID(attach.GetOwner()),
			SessionID:  schema.SessionID(attach.GetSessionId()),
			SocketPath: attach.GetSocketPath(),
			Title:      attach.GetTitle(),
		}
	}
	return cfg
}

func fromPBSessionInfo(pb *backendpb.SessionInfo) schema.SessionSnapshot {
	if pb == nil {
		return schema.SessionSnapshot{}
	}
	return schema.SessionSnapshot{
		ID:       schema.SessionID(pb.GetId()),
		Identity: schema.Identity(pb.GetIdentity()),
		Title:    pb.GetTitle(),
	}
}
