package entity

type MovieActor struct {
	JoinBase
	ActorID int64 `db:"actor_id"`
}
