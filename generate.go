// Codegen requires protoc, protoc-gen-go, and protoc-gen-go-grpc on PATH.
//go:generate protoc --go_out=. --go-grpc_out=. --go_opt=module=pkt.systems/termtab --go-grpc_opt=module=pkt.systems/termtab proto/backend/v1/backend.proto

package termtab
