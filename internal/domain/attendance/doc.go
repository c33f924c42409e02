// Package attendance contém o motor de classificação de presenças do
// Daily Check Maromba.
//
// O fluxo central: marcações brutas do dia (presente, ausente, hospital,
// justificado) entram no processador do dia, que resolve a janela semanal,
// conta as ausências anteriores do atleta na mesma semana e deriva o status
// final segundo a política da temporada (limite semanal de folgas, datas
// bônus, vale-folga). O agregador depois transforma os registros derivados
// em estatísticas, multas e rankings.
//
// Regras de ouro:
//
//   - Ausência em data bônus nunca vira falta e nunca conta no limite semanal.
//   - O contador semanal de ausências zera a cada início de semana
//     (configurável de domingo a sábado) e é sempre recalculado a partir dos
//     registros - nunca guardado como total acumulado.
//   - O status derivado é função pura de (status original, data bônus,
//     ausências anteriores na semana, limite semanal). O status original é
//     preservado em cada registro para que o dia possa ser reeditado ou
//     reprocessado sem perder a intenção do usuário.
//
// Todo o pacote é computação pura e síncrona sobre dados já buscados do
// armazenamento; nenhuma função aqui faz I/O.
package attendance
