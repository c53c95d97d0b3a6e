/*
Package queue defines the tasks pending to grow a tree
as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface
that hands out the most recently pushed task first.
*/
package queue
