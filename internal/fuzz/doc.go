// Package fuzztests houses Go fuzz harnesses for the nkl front end
// (source -> lexer -> parser -> binder). They guard against panics and
// hangs on arbitrary inputs and check span invariants of parsed trees.
//
// Назначение: прогонять байты через FileSet, лексер, парсер и биндер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
