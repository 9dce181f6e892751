// Package http provides HTTP handlers and middleware for the reservation API.
//
// The router exposes the following endpoints, all exchanging JSON:
//   - GET /cursos, POST /cursos, GET /cursos/{id}, PUT /cursos/{id},
//     DELETE /cursos/{id}: course catalog endpoints exchanging the `courseDTO`
//     payload defined in course_handler.go.
//   - GET /blocos, POST /blocos, GET /blocos/{id}, PUT /blocos/{id},
//     DELETE /blocos/{id}: block endpoints exchanging the `blockDTO` payload
//     defined in block_handler.go. Deleting a block also removes its rooms and
//     their reservations.
//   - GET /salas, POST /salas, GET /salas/{id}, PUT /salas/{id},
//     DELETE /salas/{id}: room endpoints exchanging the `roomDTO` payload
//     defined in room_handler.go. The room's curso_id is derived from its
//     block and never accepted from the caller.
//   - GET /coordenadores, POST /coordenadores, GET /coordenadores/{id},
//     PUT /coordenadores/{id}, DELETE /coordenadores/{id}: coordinator
//     endpoints exchanging the `coordinatorDTO` payload defined in
//     coordinator_handler.go. The senha field is accepted on writes and never
//     echoed back.
//   - GET /reservas, POST /reservas, GET /reservas/{id}, PUT /reservas/{id},
//     DELETE /reservas/{id}: reservation endpoints exchanging the
//     `reservationDTO` payload defined in reservation_handler.go. Creates and
//     updates run the full rule set: room existence, exclusivity
//     authorization, then overlap detection.
//   - GET /reservas/disponibilidade?sala_id&data&hora_inicio&hora_fim:
//     dry-run overlap check answering {"disponivel","mensagem"} without
//     creating anything.
//
// Successful mutations answer 200 with the stored record; deletes answer 200
// with a {"detail"} confirmation. Errors answer {"detail"} with 404 for
// missing records, 403 for exclusivity denials, 400 for conflicts and
// duplicate emails, and 422 for field validation issues.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
